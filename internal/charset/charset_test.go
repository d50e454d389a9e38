package charset

import "testing"

func TestSizeOf(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 26},
		{"ABC", 26},
		{"123", 10},
		{"!!", 32},
		{"aA", 52},
		{"a1", 36},
		{"aA1", 62},
		{"aA1!", 94},
		{"a b", 58}, // space is special
		{"1234567890", 10},
	}
	for _, tc := range cases {
		if got := SizeOf(tc.in); got != tc.want {
			t.Errorf("SizeOf(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := map[rune]Class{
		'a': Lower, 'z': Lower, 'A': Upper, 'Z': Upper, '0': Digit, '9': Digit,
		'!': Special, ' ': Special, '_': Special, 'é': Lower, 'Ж': Upper,
	}
	for r, want := range cases {
		if got := Classify(r); got != want {
			t.Errorf("Classify(%q) = %v, want %v", r, got, want)
		}
	}
	// caseless letter is neither special nor cased
	if got := Classify('中'); got != 0 {
		t.Errorf("Classify(中) = %v, want 0", got)
	}
}

func TestCount(t *testing.T) {
	pw := "abC12!?"
	if Count(pw, Lower) != 2 || Count(pw, Upper) != 1 || Count(pw, Digit) != 2 || Count(pw, Special) != 2 {
		t.Fatalf("unexpected counts for %q", pw)
	}
}

func TestSpecialsAreSpecial(t *testing.T) {
	for _, r := range Specials {
		if Classify(r) != Special {
			t.Errorf("%q should classify as special", r)
		}
	}
	if len(Specials) != 30 {
		t.Fatalf("expected 30 specials, got %d", len(Specials))
	}
}
