package lattice

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/matzehuels/stacklattice/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		pipe     bool
		hadamard bool
		exits    []Axis
	}{
		{name: "block doubled z", input: "zxz", exits: []Axis{AxisX, AxisZ}},
		{name: "block doubled x", input: "xxz", exits: []Axis{AxisX, AxisY}},
		{name: "block uppercase", input: "ZZX", exits: []Axis{AxisX, AxisY}},
		{name: "pipe x", input: "oxz", pipe: true, exits: []Axis{AxisX}},
		{name: "pipe z", input: "zxo", pipe: true, exits: []Axis{AxisZ}},
		{name: "open wins over doubled", input: "oxx", pipe: true, exits: []Axis{AxisX}},
		{name: "hadamard pipe", input: "zxoh", pipe: true, hadamard: true, exits: []Axis{AxisZ}},

		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "zx", wantErr: true},
		{name: "too long", input: "zxohh", wantErr: true},
		{name: "bad suffix", input: "zxoq", wantErr: true},
		{name: "unknown role", input: "zqz", wantErr: true},
		{name: "all open", input: "ooo", wantErr: true},
		{name: "two open", input: "oox", wantErr: true},
		{name: "tripled", input: "xxx", wantErr: true},
		{name: "all distinct", input: "xyz", wantErr: true},
		{name: "hadamard block", input: "zxzh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) = %v, want error", tt.input, k)
				}
				if !errors.Is(err, errors.ErrCodeInvalidKind) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.input, err)
			}
			if k.IsPipe() != tt.pipe {
				t.Errorf("IsPipe() = %v, want %v", k.IsPipe(), tt.pipe)
			}
			if k.IsBlock() == tt.pipe {
				t.Errorf("IsBlock() = %v, want %v", k.IsBlock(), !tt.pipe)
			}
			if k.IsHadamard() != tt.hadamard {
				t.Errorf("IsHadamard() = %v, want %v", k.IsHadamard(), tt.hadamard)
			}
			if got := k.ExitAxes(); !slices.Equal(got, tt.exits) {
				t.Errorf("ExitAxes() = %v, want %v", got, tt.exits)
			}
			for _, a := range Axes {
				if k.IsExitAxis(a) != slices.Contains(tt.exits, a) {
					t.Errorf("IsExitAxis(%v) = %v", a, k.IsExitAxis(a))
				}
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for _, s := range []string{"zxz", "xxz", "oxz", "zxoh", "ozxh"} {
		if got := MustKind(s).String(); got != s {
			t.Errorf("MustKind(%q).String() = %q", s, got)
		}
	}
	if got := (Kind{}).String(); got != "" {
		t.Errorf("zero Kind String() = %q, want empty", got)
	}
	if !(Kind{}).IsZero() || (Kind{}).IsBlock() || (Kind{}).IsPipe() {
		t.Error("zero Kind should be neither block nor pipe")
	}
}

func TestKindOpenAxis(t *testing.T) {
	if a, ok := MustKind("xoz").OpenAxis(); !ok || a != AxisY {
		t.Errorf("OpenAxis() = %v, %v; want y, true", a, ok)
	}
	if _, ok := MustKind("xzx").OpenAxis(); ok {
		t.Error("block should have no open axis")
	}
}

func TestMustKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustKind should panic on malformed kind")
		}
	}()
	MustKind("ooo")
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(PathNode{Coord: C(3, -3, 0), Kind: MustKind("xzoh")})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"coord":[3,-3,0],"kind":"xzoh"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var n PathNode
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatal(err)
	}
	if n.Kind != MustKind("xzoh") || n.Coord != C(3, -3, 0) {
		t.Errorf("Unmarshal = %+v", n)
	}

	if err := json.Unmarshal([]byte(`{"coord":[0,0,0],"kind":"xxx"}`), &n); err == nil {
		t.Error("Unmarshal should reject malformed kind")
	}
}
