package mesh

// Direction is the outward normal of a face.
// north = +Z, south = -Z, east = +X, west = -X
type Direction uint8

const (
	Top Direction = iota
	Bottom
	North
	South
	East
	West

	directionCount
)

// Directions lists every face direction in packed-code order.
var Directions = [directionCount]Direction{Top, Bottom, North, South, East, West}

// offsets holds the single-step neighbour offset for each direction.
var offsets = [directionCount][3]int{
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	North:  {0, 0, 1},
	South:  {0, 0, -1},
	East:   {1, 0, 0},
	West:   {-1, 0, 0},
}

// Offset returns the (dx, dy, dz) step towards the cell this face looks at.
func (d Direction) Offset() (dx, dy, dz int) {
	o := offsets[d]
	return o[0], o[1], o[2]
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "unknown"
}
