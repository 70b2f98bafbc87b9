package geom

// RangeTier is the discrete distance class between two cells. Hop sizing
// and attack range both key off it.
type RangeTier int

const (
	Zero RangeTier = iota
	Adjacent
	TwoCell
	ThreeCell
	Undefined
)

func (t RangeTier) String() string {
	switch t {
	case Zero:
		return "Zero"
	case Adjacent:
		return "Adjacent"
	case TwoCell:
		return "TwoCell"
	case ThreeCell:
		return "ThreeCell"
	default:
		return "Undefined"
	}
}

// Steps is the number of cells a straight hop of this tier covers,
// or -1 for Undefined.
func (t RangeTier) Steps() int {
	switch t {
	case Zero:
		return 0
	case Adjacent:
		return 1
	case TwoCell:
		return 2
	case ThreeCell:
		return 3
	default:
		return -1
	}
}

// TierForSteps maps a step count 0..3 back to its tier.
func TierForSteps(n int) RangeTier {
	switch n {
	case 0:
		return Zero
	case 1:
		return Adjacent
	case 2:
		return TwoCell
	case 3:
		return ThreeCell
	default:
		return Undefined
	}
}

// LDistance2 is the squared euclidean distance. int64 keeps it exact for
// mainland coordinates (~33000).
func LDistance2(a, b Cell) int64 {
	dx := int64(a.X) - int64(b.X)
	dy := int64(a.Y) - int64(b.Y)
	return dx*dx + dy*dy
}

// Classify buckets LDistance2 into a tier. Only straight or diagonal offsets
// of 1..3 cells have a tier; a knight-like offset such as (1, 2) is Undefined
// and callers must fail instead of guessing.
func Classify(a, b Cell) RangeTier {
	switch LDistance2(a, b) {
	case 0:
		return Zero
	case 1, 2:
		return Adjacent
	case 4, 8:
		return TwoCell
	case 9, 18:
		return ThreeCell
	default:
		return Undefined
	}
}

// Within reports whether t is a defined, non-zero tier no farther than max.
func (t RangeTier) Within(max RangeTier) bool {
	return t != Zero && t != Undefined && t <= max
}
