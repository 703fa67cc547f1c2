package color

import (
	"testing"

	"github.com/Harshitk-cp/brainbase/internal/domain"
)

func TestHexDecoder_Decode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.Color
		ok   bool
	}{
		{"six digit", "#ff0000", domain.Color{R: 1, G: 0, B: 0, A: 1}, true},
		{"no hash", "00ff00", domain.Color{R: 0, G: 1, B: 0, A: 1}, true},
		{"short form", "#00f", domain.Color{R: 0, G: 0, B: 1, A: 1}, true},
		{"upper case", "#FFFFFF", domain.Color{R: 1, G: 1, B: 1, A: 1}, true},
		{"with alpha", "#00000000", domain.Color{}, true},
		{"empty", "", domain.Color{}, false},
		{"bad length", "#ff00", domain.Color{}, false},
		{"not hex", "#gggggg", domain.Color{}, false},
		{"word", "red", domain.Color{}, false},
		{"signed", "#+fffff", domain.Color{}, false},
	}

	d := NewHexDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Decode(tt.in)
			if ok != tt.ok {
				t.Fatalf("Decode(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
