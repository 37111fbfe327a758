// Package voronoi implements planar Voronoi diagrams, built as the dual of a Delaunay triangulation.

package voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// Bounded reports whether the cell is a closed polygon. Cells of sites on the
// convex hull of the input extend to infinity.
func (c Cell) Bounded() bool {
	return !c.d.CellUnbounded[c.idx]
}

// NumVertices returns the number of finite vertices of the cell.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// Polygon returns the cell's vertices in counter-clockwise order.
func (c Cell) Polygon() []r2.Point {
	indices := c.VertexIndices()
	poly := make([]r2.Point, len(indices))
	for i, idx := range indices {
		poly[i] = c.d.Vertices[idx]
	}
	return poly
}

// NumNeighbors returns the number of neighboring cells.
func (c Cell) NumNeighbors() int {
	c.d.ensureNeighbors()
	return c.d.CellNeighborOffsets[c.idx+1] - c.d.CellNeighborOffsets[c.idx]
}

// NeighborIndices returns the site indices of the neighboring cells, sorted in counter-clockwise order.
func (c Cell) NeighborIndices() []int {
	c.d.ensureNeighbors()
	return c.d.CellNeighbors[c.d.CellNeighborOffsets[c.idx]:c.d.CellNeighborOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	c.d.ensureNeighbors()
	start := c.d.CellNeighborOffsets[c.idx]
	end := c.d.CellNeighborOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Cell(c.d.CellNeighbors[start+i])
}
