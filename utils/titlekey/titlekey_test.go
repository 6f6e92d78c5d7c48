package titlekey

import "testing"

func TestKey(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Matrix", "the-matrix"},
		{"THE MATRIX", "the-matrix"},
		{"The  Matrix", "the-matrix"},
		{"The Matrix!", "the-matrix"},
		{"The Matrix (1999)", "the-matrix-1999"},
		{"2001: A Space Odyssey", "2001-a-space-odyssey"},
		{"  Jaws  ", "jaws"},
		{"What's Up, Doc?", "whats-up-doc"},
		{"Amélie", "amelie"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Key(tc.title); got != tc.want {
			t.Errorf("Key(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestKeyEquivalence(t *testing.T) {
	// Titles differing only in case, punctuation, or whitespace run length
	// must collapse to the same key.
	groups := [][]string{
		{"Metropolis", "METROPOLIS", "Metropolis!", " metropolis "},
		{"Paris, Texas", "Paris Texas", "paris   texas"},
		{"8 1/2", "8 12", "8  1-2"},
	}

	for _, group := range groups {
		want := Key(group[0])
		for _, title := range group[1:] {
			if got := Key(title); got != want {
				t.Errorf("Key(%q) = %q, want %q (same as %q)", title, got, want, group[0])
			}
		}
	}
}

func TestKeyDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Key("Chungking Express"); got != "chungking-express" {
			t.Fatalf("Key not stable across calls: %q", got)
		}
	}
}
