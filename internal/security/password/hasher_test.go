package password

import (
	"fmt"
	"strings"
	"testing"
)

// small params keep the tests fast
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestArgon2idRoundTrip(t *testing.T) {
	h := NewArgon2id(testParams)
	phc, err := h.Hash("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(phc, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", phc)
	}
	if ok, err := h.Verify("correct horse", phc); err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v", ok, err)
	}
	if ok, _ := h.Verify("wrong horse", phc); ok {
		t.Fatal("Verify(wrong) = true")
	}
	if h.NeedsRehash(phc) {
		t.Fatal("fresh hash should not need rehash")
	}
	stronger := NewArgon2id(Params{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if !stronger.NeedsRehash(phc) {
		t.Fatal("weaker hash should need rehash")
	}
	if !h.NeedsRehash("garbage") {
		t.Fatal("unparseable hash should need rehash")
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	h := Bcrypt{Cost: 4}
	hash, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := h.Verify("s3cret!", hash); err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v", ok, err)
	}
	if ok, err := h.Verify("nope", hash); err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v", ok, err)
	}
	if _, err := h.Verify("x", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestSHA1(t *testing.T) {
	// well-known: sha1("password")
	const want = "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8"
	got, _ := SHA1{}.Hash("password")
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if ok, _ := (SHA1{}).Verify("password", strings.ToLower(want)); !ok {
		t.Fatal("Verify should accept lowercase hex")
	}
	if ok, _ := (SHA1{}).Verify("Password", want); ok {
		t.Fatal("Verify matched a different password")
	}
}

func TestNew(t *testing.T) {
	for name, want := range map[string]string{"": "*password.Argon2id", "ARGON2ID": "*password.Argon2id", "bcrypt": "password.Bcrypt", "sha1": "password.SHA1"} {
		h, err := New(name, testParams)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if got := typeName(h); got != want {
			t.Errorf("New(%q) = %s, want %s", name, got, want)
		}
	}
	if _, err := New("md5", testParams); err == nil {
		t.Fatal("expected error for unknown hasher")
	}
}

func TestLoadParamsFromEnv(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "65536")
	t.Setenv("ARGON2_ITER", "bogus")
	p := LoadParamsFromEnv()
	if p.Memory != 65536 || p.Iterations != DefaultParams().Iterations {
		t.Fatalf("unexpected params %+v", p)
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
