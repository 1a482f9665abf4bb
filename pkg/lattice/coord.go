package lattice

import (
	"encoding/json"
	"fmt"
)

// GridUnit is the spacing between neighbouring block positions. A block and
// the pipe leaving it together span one unit along the pipe's axis.
const GridUnit = 3

// Axis names one of the three lattice axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists every axis in index order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Coord is an integer position in the space-time lattice.
// Coords are comparable and can be used as map keys.
type Coord struct {
	X, Y, Z int
}

// C is shorthand for Coord{x, y, z}.
func C(x, y, z int) Coord { return Coord{X: x, Y: y, Z: z} }

// Add returns c + o.
func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z} }

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z} }

// Scale returns c multiplied component-wise by n.
func (c Coord) Scale(n int) Coord { return Coord{c.X * n, c.Y * n, c.Z * n} }

// Sign reduces every component to -1, 0 or 1.
func (c Coord) Sign() Coord { return Coord{sign(c.X), sign(c.Y), sign(c.Z)} }

// Get returns the component along a.
func (c Coord) Get(a Axis) int {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// Manhattan returns the L1 distance between c and o.
func (c Coord) Manhattan(o Coord) int {
	d := c.Sub(o)
	return abs(d.X) + abs(d.Y) + abs(d.Z)
}

// AxisTo returns the single axis along which o differs from c.
// ok is false when the two coords are equal or differ along several axes.
func (c Coord) AxisTo(o Coord) (a Axis, ok bool) {
	d := o.Sub(c)
	n := 0
	for _, ax := range Axes {
		if d.Get(ax) != 0 {
			a = ax
			n++
		}
	}
	return a, n == 1
}

// String formats the coord as "(x, y, z)".
func (c Coord) String() string { return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z) }

// MarshalJSON encodes the coord as a three element array.
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{c.X, c.Y, c.Z})
}

// UnmarshalJSON decodes a three element array.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("coord must have 3 components, got %d", len(v))
	}
	*c = Coord{v[0], v[1], v[2]}
	return nil
}

// UnitSteps are the six axis-aligned unit directions in the fixed order
// +X, -X, +Y, -Y, +Z, -Z.
var UnitSteps = [6]Coord{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
