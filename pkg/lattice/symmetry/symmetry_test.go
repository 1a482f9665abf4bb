package symmetry

import (
	"testing"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

func TestRotate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zxo", "xzo"},
		{"xzo", "zxo"},
		{"oxz", "ozx"},
		{"xoz", "zox"},
		{"zxoh", "xzoh"},
		{"oxzh", "ozxh"},
		{"xox", "xox"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := RotateName(tt.in)
			if err != nil {
				t.Fatalf("RotateName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("RotateName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateInvolution(t *testing.T) {
	for _, s := range []string{"zxo", "oxz", "xoz", "zxoh", "xozh", "ozxh"} {
		k := lattice.MustKind(s)
		once, err := Rotate(k)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := Rotate(once)
		if err != nil {
			t.Fatal(err)
		}
		if twice != k {
			t.Errorf("Rotate(Rotate(%s)) = %s", k, twice)
		}
		a1, _ := k.OpenAxis()
		a2, _ := once.OpenAxis()
		if a1 != a2 {
			t.Errorf("Rotate(%s) moved the open axis from %v to %v", k, a1, a2)
		}
	}
}

func TestRotateBlock(t *testing.T) {
	_, err := Rotate(lattice.MustKind("zxz"))
	if !errors.Is(err, errors.ErrCodeNotPipe) {
		t.Errorf("Rotate(block) error = %v, want %v", err, errors.ErrCodeNotPipe)
	}
	if _, err := RotateName("xxx"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("RotateName(xxx) error = %v, want %v", err, errors.ErrCodeInvalidKind)
	}
}

func TestFlipHadamard(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zxoh", "xzoh"},
		{"xzoh", "zxoh"},
		{"xozh", "zoxh"},
		{"zoxh", "xozh"},
		{"oxzh", "ozxh"},
		{"ozxh", "oxzh"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FlipHadamardName(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("FlipHadamardName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}

			k := lattice.MustKind(tt.in)
			flipped, err := FlipHadamard(k)
			if err != nil || flipped.String() != tt.want {
				t.Errorf("FlipHadamard(%s) = %s, %v; want %s", k, flipped, err, tt.want)
			}
			back, err := FlipHadamard(flipped)
			if err != nil || back != k {
				t.Errorf("FlipHadamard is not its own inverse for %s: got %s, %v", k, back, err)
			}
		})
	}
}

func TestFlipHadamardRejects(t *testing.T) {
	for _, s := range []string{"zxo", "zxz", "ZXOH", "zxohh", "", "oxxh"} {
		if _, err := FlipHadamardName(s); !errors.Is(err, errors.ErrCodeInvalidKind) {
			t.Errorf("FlipHadamardName(%q) error = %v, want %v", s, err, errors.ErrCodeInvalidKind)
		}
	}
	for _, s := range []string{"zxo", "zxz", "oxxh"} {
		if _, err := FlipHadamard(lattice.MustKind(s)); !errors.Is(err, errors.ErrCodeInvalidKind) {
			t.Errorf("FlipHadamard(%q) error = %v, want %v", s, err, errors.ErrCodeInvalidKind)
		}
	}
}
