// Package stats reports memory and geometry footprints of the loaded chunks.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"voxplace/internal/chunk"
	"voxplace/internal/mesh"
	"voxplace/internal/world"
)

// ChunkStats is the footprint of one chunk.
type ChunkStats struct {
	chunk.Stats
	Faces     int
	Vertices  int
	VRAMBytes int
}

// Summary is the footprint of every chunk plus totals.
type Summary struct {
	Chunks []ChunkStats

	Faces     int
	Vertices  int
	RAMBytes  int
	VRAMBytes int
}

// Collect gathers stats for every chunk in r, in coordinate order.
func Collect(r *world.Registry) Summary {
	var s Summary
	r.Each(func(e *world.Entry) {
		cs := ChunkStats{
			Stats:     e.Chunk.Stats(),
			Faces:     e.Mesh.Faces(),
			VRAMBytes: e.Mesh.VRAMBytes(),
		}
		cs.Vertices = cs.Faces * mesh.VerticesPerFace

		s.Chunks = append(s.Chunks, cs)
		s.Faces += cs.Faces
		s.Vertices += cs.Vertices
		s.RAMBytes += cs.RAMBytes
		s.VRAMBytes += cs.VRAMBytes
	})
	return s
}

var units = [...]string{"B", "KB", "MB", "GB"}

// FormatBytes renders n with two decimals in the largest unit that keeps
// the value at or above 1, up to GB.
func FormatBytes(n int) string {
	size := float64(n)
	u := 0
	for size >= 1024 && u < len(units)-1 {
		size /= 1024
		u++
	}
	return fmt.Sprintf("%.2f %s", size, units[u])
}

const rule = "+--------------------------------------------------------------+"

// Report writes a per-chunk table followed by the totals.
func (s Summary) Report(w io.Writer) {
	head := color.New(color.FgCyan, color.Bold)
	total := color.New(color.FgGreen)

	fmt.Fprintln(w, rule)
	head.Fprintf(w, "| %-60s |\n", "VOXPLACE CHUNK PROFILER")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| %-12s%-12s%-12s%-12s%-12s |\n", "Chunk", "Vertices", "Fill", "RAM", "VRAM")
	fmt.Fprintln(w, rule)
	for _, c := range s.Chunks {
		fmt.Fprintf(w, "| %-12s%-12d%-12s%-12s%-12s |\n",
			c.Coord, c.Vertices, fmt.Sprintf("%.1f%%", c.FillPercent), FormatBytes(c.RAMBytes), FormatBytes(c.VRAMBytes))
	}
	fmt.Fprintln(w, rule)
	for _, line := range s.Lines() {
		total.Fprintf(w, "| %-60s |\n", line)
	}
	fmt.Fprintln(w, rule)
}

// Lines returns the totals as short text lines, for the console report and
// the on-screen overlay.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Chunks     : %d", len(s.Chunks)),
		fmt.Sprintf("Vertices   : %d", s.Vertices),
		fmt.Sprintf("RAM        : %s", FormatBytes(s.RAMBytes)),
		fmt.Sprintf("VRAM       : %s", FormatBytes(s.VRAMBytes)),
		fmt.Sprintf("RAM + VRAM : %s", FormatBytes(s.RAMBytes+s.VRAMBytes)),
	}
}

func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}
