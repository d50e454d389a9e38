package analysis

import "unicode"

// hasDate looks for YYYY[sep]MM[sep]DD or DD[sep]MM[sep]YYYY that is not glued
// to other digits. YYYY is 1000-2099, sep is one of - . / \ and optional.
func hasDate(rs []rune) bool {
	for i := range rs {
		if i > 0 && unicode.IsDigit(rs[i-1]) {
			continue
		}
		for _, layout := range dateLayouts {
			if end, ok := matchLayout(rs, i, layout); ok {
				if end == len(rs) || !unicode.IsDigit(rs[end]) {
					return true
				}
			}
		}
	}
	return false
}

type datePart func(rs []rune, i int) (int, bool)

var dateLayouts = [][]datePart{
	{year, separator, month, separator, day},
	{day, separator, month, separator, year},
}

func matchLayout(rs []rune, i int, layout []datePart) (int, bool) {
	for _, part := range layout {
		var ok bool
		if i, ok = part(rs, i); !ok {
			return 0, false
		}
	}
	return i, true
}

// separator consumes one separator rune when present; it never fails.
func separator(rs []rune, i int) (int, bool) {
	if i < len(rs) {
		switch rs[i] {
		case '-', '.', '/', '\\':
			return i + 1, true
		}
	}
	return i, true
}

func year(rs []rune, i int) (int, bool) {
	v, ok := number(rs, i, 4)
	return i + 4, ok && v >= 1000 && v <= 2099
}

func month(rs []rune, i int) (int, bool) {
	v, ok := number(rs, i, 2)
	return i + 2, ok && v >= 1 && v <= 12
}

func day(rs []rune, i int) (int, bool) {
	v, ok := number(rs, i, 2)
	return i + 2, ok && v >= 1 && v <= 31
}

// number parses width ASCII digits starting at i.
func number(rs []rune, i, width int) (int, bool) {
	if i+width > len(rs) {
		return 0, false
	}
	v := 0
	for _, r := range rs[i : i+width] {
		if r < '0' || r > '9' {
			return 0, false
		}
		v = v*10 + int(r-'0')
	}
	return v, true
}
