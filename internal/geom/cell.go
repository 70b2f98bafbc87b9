package geom

import "fmt"

// Cell is a grid coordinate in world space. It carries no validity;
// walkability is always asked of the occupancy oracle.
type Cell struct {
	X int32
	Y int32
}

func C(x, y int32) Cell { return Cell{X: x, Y: y} }

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add returns c shifted by (dx, dy).
func (c Cell) Add(dx, dy int32) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Heading is one of the eight grid directions.
// 0=N, 1=NE, 2=E, 3=SE, 4=S, 5=SW, 6=W, 7=NW
type Heading int16

const (
	North Heading = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// heading direction deltas, same table the map tiles use.
var headingDX = [8]int32{0, 1, 1, 1, 0, -1, -1, -1}
var headingDY = [8]int32{-1, -1, 0, 1, 1, 1, 0, -1}

func (h Heading) Valid() bool { return h >= 0 && h <= 7 }

// Delta returns the unit offset for h, or (0, 0) for an invalid heading.
func (h Heading) Delta() (int32, int32) {
	if !h.Valid() {
		return 0, 0
	}
	return headingDX[h], headingDY[h]
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// HeadingOf returns the 8-way heading from a toward b using the signs of the
// offsets. Equal cells yield North.
func HeadingOf(a, b Cell) Heading {
	ddx := sign(b.X - a.X)
	ddy := sign(b.Y - a.Y)
	for i := Heading(0); i < 8; i++ {
		if headingDX[i] == ddx && headingDY[i] == ddy {
			return i
		}
	}
	return North
}

// FrontCell returns the cell n steps away from c along h.
func FrontCell(c Cell, h Heading, n int32) Cell {
	dx, dy := h.Delta()
	return Cell{X: c.X + dx*n, Y: c.Y + dy*n}
}

// StepToward returns the unit step signs from a toward b.
func StepToward(a, b Cell) (int32, int32) {
	return sign(b.X - a.X), sign(b.Y - a.Y)
}

// Chebyshev returns max(|dx|, |dy|).
func Chebyshev(a, b Cell) int32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}
