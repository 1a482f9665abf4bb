package lattice

import (
	"slices"
	"testing"

	"github.com/matzehuels/stacklattice/pkg/errors"
)

func TestBeamValidate(t *testing.T) {
	tests := []struct {
		name    string
		beam    Beam
		wantErr bool
	}{
		{"single cell", Beam{C(1, 0, 0)}, false},
		{"straight x", Beam{C(1, 0, 0), C(2, 0, 0), C(3, 0, 0)}, false},
		{"straight negative z", Beam{C(0, 0, -1), C(0, 0, -2)}, false},
		{"diagonal unit", Beam{C(1, 1, 0), C(2, 2, 0)}, false},

		{"empty", Beam{}, true},
		{"repeated cell", Beam{C(1, 0, 0), C(1, 0, 0)}, true},
		{"long step", Beam{C(1, 0, 0), C(3, 0, 0)}, true},
		{"bend", Beam{C(1, 0, 0), C(2, 0, 0), C(2, 1, 0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.beam.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidBeam) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestBeamsContains(t *testing.T) {
	beams := Beams{
		{Beam{C(1, 0, 0), C(2, 0, 0)}},
		{Beam{C(0, 1, 0)}, Beam{C(0, 0, -1), C(0, 0, -2)}},
	}
	for _, c := range []Coord{C(2, 0, 0), C(0, 1, 0), C(0, 0, -2)} {
		if !beams.Contains(c) {
			t.Errorf("Contains(%v) = false", c)
		}
	}
	if beams.Contains(C(3, 0, 0)) {
		t.Error("Contains(3,0,0) = true")
	}
	if beams.CellCount() != 5 {
		t.Errorf("CellCount() = %d, want 5", beams.CellCount())
	}
	if (Beams{}).Contains(C(0, 0, 0)) {
		t.Error("empty collection should contain nothing")
	}
}

func TestOccupiedSet(t *testing.T) {
	s := NewOccupiedSet(C(0, 0, 0), C(1, 0, 0))
	s.Add(C(1, 0, 0), C(3, 0, 0))

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(C(3, 0, 0)) || s.Contains(C(2, 0, 0)) {
		t.Error("unexpected membership")
	}
	want := []Coord{C(0, 0, 0), C(1, 0, 0), C(3, 0, 0)}
	if got := s.Coords(); !slices.Equal(got, want) {
		t.Errorf("Coords() = %v, want %v", got, want)
	}

	var nilSet *OccupiedSet
	if nilSet.Len() != 0 || nilSet.Contains(C(0, 0, 0)) || nilSet.Coords() != nil {
		t.Error("nil set should behave as empty")
	}
}
