package ratings

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"lowercases", "Erling Haaland", "erling haaland"},
		{"strips accents", "Kylian Mbappé", "kylian mbappe"},
		{"strips diacritics", "Nicolò Barella", "nicolo barella"},
		{"strips punctuation", "O'Neill, Jr.", "oneill jr"},
		{"keeps digits and underscore", "player_07", "player_07"},
		{"empty", "", ""},
		{"whitespace preserved", "a  b", "a  b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Kylian Mbappé", "Erling Haaland", "Çağlar Söyüncü", "", "a-b_c 1"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
