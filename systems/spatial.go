package systems

import (
	"math"
	"sort"

	"github.com/pthm-cable/momentum/components"
)

// DefaultCellSize is the horizontal size of a collider grid cell in world units.
const DefaultCellSize = 8.0

// cellKey addresses one column of the grid on the XZ plane.
type cellKey struct {
	col, row int32
}

// SpatialGrid buckets static boxes by the XZ cells they cover, so queries only
// visit boxes near the query region. The grid is unbounded.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int

	// Query dedup: an item is visited once per query id.
	stamps  []uint32
	queryID uint32
}

// NewSpatialGrid creates an empty grid.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Insert adds item to every cell the box covers.
// Items must be inserted with consecutive indices starting at zero.
func (g *SpatialGrid) Insert(item int, box components.AABB) {
	for len(g.stamps) <= item {
		g.stamps = append(g.stamps, 0)
	}
	c0, r0, c1, r1 := g.span(box)
	for c := c0; c <= c1; c++ {
		for r := r0; r <= r1; r++ {
			k := cellKey{c, r}
			g.cells[k] = append(g.cells[k], item)
		}
	}
}

// QueryInto appends to dst every item sharing a cell with box, each once and
// in ascending order. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryInto(dst []int, box components.AABB) []int {
	g.queryID++
	start := len(dst)

	c0, r0, c1, r1 := g.span(box)
	for c := c0; c <= c1; c++ {
		for r := r0; r <= r1; r++ {
			for _, item := range g.cells[cellKey{c, r}] {
				if g.stamps[item] == g.queryID {
					continue
				}
				g.stamps[item] = g.queryID
				dst = append(dst, item)
			}
		}
	}

	sort.Ints(dst[start:])
	return dst
}

// span returns the inclusive cell range covered by a box.
func (g *SpatialGrid) span(box components.AABB) (c0, r0, c1, r1 int32) {
	return g.cell(box.Min.X), g.cell(box.Min.Z), g.cell(box.Max.X), g.cell(box.Max.Z)
}

func (g *SpatialGrid) cell(x float64) int32 {
	return int32(math.Floor(x / g.cellSize))
}
