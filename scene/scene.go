// Package scene provides a retained line collection for plot rendering.
// A Scene accumulates polyline nodes with per-line materials; a Renderer
// plays the whole collection back into a surface in one traversal.
//
// The intended frame loop clears the scene, re-adds every visible line,
// and renders:
//
//	sc.Reset()
//	for _, row := range rows {
//	    sc.AddLine(scene.NewLine(points, scene.SolidMaterial(color, 1.5)))
//	}
//	renderer.Render(sc, dst)
package scene

// Scene is a retained collection of line nodes. It is rebuilt rather
// than mutated: each frame clears the collection and adds the lines that
// frame needs.
type Scene struct {
	lines []*Line

	// version is incremented on each modification for cache invalidation
	version uint64
}

// NewScene creates a new empty scene.
func NewScene() *Scene {
	return &Scene{
		lines: make([]*Line, 0, 64),
	}
}

// Reset clears the scene for reuse without deallocating memory.
func (s *Scene) Reset() {
	s.lines = s.lines[:0]
	s.version++
}

// AddLine appends a line node to the scene. Degenerate lines are kept
// out so traversal never sees an unstrokeable node.
func (s *Scene) AddLine(l *Line) {
	if l == nil || l.IsDegenerate() {
		return
	}
	s.lines = append(s.lines, l)
	s.version++
}

// Lines returns the scene's nodes in insertion order, which is draw
// order.
func (s *Scene) Lines() []*Line {
	return s.lines
}

// Len returns the number of line nodes.
func (s *Scene) Len() int {
	return len(s.lines)
}

// IsEmpty returns true if the scene has no content.
func (s *Scene) IsEmpty() bool {
	return len(s.lines) == 0
}

// Version returns the scene version number.
// This is incremented on each modification and can be used for cache invalidation.
func (s *Scene) Version() uint64 {
	return s.version
}

// Bounds returns the union of all line bounds as minX, minY, maxX, maxY.
// An empty scene returns zeros.
func (s *Scene) Bounds() (minX, minY, maxX, maxY float32) {
	if len(s.lines) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY, maxX, maxY = s.lines[0].Bounds()
	for _, l := range s.lines[1:] {
		lminX, lminY, lmaxX, lmaxY := l.Bounds()
		if lminX < minX {
			minX = lminX
		}
		if lminY < minY {
			minY = lminY
		}
		if lmaxX > maxX {
			maxX = lmaxX
		}
		if lmaxY > maxY {
			maxY = lmaxY
		}
	}
	return minX, minY, maxX, maxY
}
