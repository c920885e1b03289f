package style

import (
	"testing"
)

func TestMatchMedia(t *testing.T) {
	phone := NewContext(WithViewport(375, 812))
	tablet := NewContext(WithViewport(1024, 768), WithColorScheme("dark"))

	tests := []struct {
		query  string
		ctx    Context
		expect bool
	}{
		{"", phone, true},
		{"(min-width: 600px)", phone, false},
		{"(min-width: 600px)", tablet, true},
		{"(max-width: 400px)", phone, true},
		{"(min-width:20em)", phone, true},
		{"screen and (max-height: 800px)", phone, false},
		{"screen and (max-height: 800px)", tablet, true},
		{"only screen and (min-width: 300px) and (max-width: 500px)", phone, true},
		{"print", phone, false},
		{"not print", phone, true},
		{"all", tablet, true},
		{"(orientation: portrait)", phone, true},
		{"(orientation: landscape)", tablet, true},
		{"(prefers-color-scheme: dark)", phone, false},
		{"(prefers-color-scheme: light)", phone, true},
		{"(prefers-color-scheme: dark)", tablet, true},
		{"print, (min-width: 1000px)", tablet, true},
		{"print, (min-width: 1000px)", phone, false},
		{"(hover: hover)", phone, false},
		{"(width: 375px)", phone, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := MatchMedia(tt.query, tt.ctx); got != tt.expect {
				t.Errorf("MatchMedia(%q) = %v, want %v", tt.query, got, tt.expect)
			}
		})
	}
}
