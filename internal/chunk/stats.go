package chunk

import "unsafe"

// headerBytes approximates the fixed part of a Chunk in memory.
var headerBytes = int(unsafe.Sizeof(Chunk{}))

// Stats is a read-only snapshot of a chunk's contents and memory use.
type Stats struct {
	Coord       Coord
	TotalCells  int
	SolidCells  int
	AirCells    int
	FillPercent float32
	RAMBytes    int
}

func (c *Chunk) Stats() Stats {
	s := Stats{
		Coord:      c.coord,
		TotalCells: len(c.cells),
		RAMBytes:   len(c.cells) + headerBytes,
	}
	for _, code := range c.cells {
		if code != 0 {
			s.SolidCells++
		}
	}
	s.AirCells = s.TotalCells - s.SolidCells
	if s.TotalCells > 0 {
		s.FillPercent = float32(s.SolidCells) / float32(s.TotalCells) * 100
	}
	return s
}
