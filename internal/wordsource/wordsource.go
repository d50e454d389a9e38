// Package wordsource loads the noun, adjective and verb lists that mnemonic
// passwords are composed from.
package wordsource

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Category selects one of the three word lists.
type Category int

const (
	Nouns Category = iota
	Adjectives
	Verbs
)

func (c Category) String() string {
	switch c {
	case Nouns:
		return "Nouns"
	case Adjectives:
		return "Adjectives"
	case Verbs:
		return "Verbs"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Data is the decoded word list document.
type Data struct {
	Nouns      []string `json:"Nouns"`
	Adjectives []string `json:"Adjectives"`
	Verbs      []string `json:"Verbs"`
}

// Words returns the list for c, or nil for an unknown category.
func (d Data) Words(c Category) []string {
	switch c {
	case Nouns:
		return d.Nouns
	case Adjectives:
		return d.Adjectives
	case Verbs:
		return d.Verbs
	default:
		return nil
	}
}

// Source yields word data. Callers cache the result; a Source may do I/O on every call.
type Source interface {
	Load(ctx context.Context) (Data, error)
}

// Decode reads a word list document and trims blank entries.
func Decode(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode word list: %w", err)
	}
	d.Nouns = clean(d.Nouns)
	d.Adjectives = clean(d.Adjectives)
	d.Verbs = clean(d.Verbs)
	return d, nil
}

func clean(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

//go:embed mnemonicdata.json
var embedded string

type embeddedSource struct{}

// Embedded returns the word lists compiled into the binary.
func Embedded() Source { return embeddedSource{} }

func (embeddedSource) Load(ctx context.Context) (Data, error) {
	return Decode(strings.NewReader(embedded))
}

// File reads the word lists from a JSON file on every Load.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) (Data, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return Data{}, fmt.Errorf("open word list: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// ObjectReader fetches an object body by key; *s3.S3Client satisfies it.
type ObjectReader interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
}

// Object reads the word lists from an object store.
type Object struct {
	Store ObjectReader
	Key   string
}

func (o Object) Load(ctx context.Context) (Data, error) {
	body, err := o.Store.GetObject(ctx, o.Key)
	if err != nil {
		return Data{}, fmt.Errorf("fetch word list %s: %w", o.Key, err)
	}
	defer body.Close()
	return Decode(body)
}
