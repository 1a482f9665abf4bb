package cli

import (
	"slices"
	"testing"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    lattice.Coord
		wantErr bool
	}{
		{"0,0,0", lattice.C(0, 0, 0), false},
		{"3,-6,9", lattice.C(3, -6, 9), false},
		{" 1, 2 , 3 ", lattice.C(1, 2, 3), false},
		{"(3, 0, -3)", lattice.C(3, 0, -3), false},
		{"1,2", lattice.Coord{}, true},
		{"1,2,3,4", lattice.Coord{}, true},
		{"a,b,c", lattice.Coord{}, true},
		{"", lattice.Coord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCoord(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCoord(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("parseCoord(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCoords(t *testing.T) {
	got, err := parseCoords("0,0,0; 3,0,0;;")
	if err != nil {
		t.Fatal(err)
	}
	want := []lattice.Coord{lattice.C(0, 0, 0), lattice.C(3, 0, 0)}
	if !slices.Equal(got, want) {
		t.Errorf("parseCoords = %v, want %v", got, want)
	}

	if got, err := parseCoords(""); err != nil || len(got) != 0 {
		t.Errorf("parseCoords(\"\") = %v, %v", got, err)
	}
	if _, err := parseCoords("0,0,0;x"); err == nil {
		t.Error("expected error for malformed entry")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"json, dot,svg", []string{"json", "dot", "svg"}},
		{"json,,dot", []string{"json", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
