package spcd3

// Topology selects how a polyline's points become vertices in a batch.
// Backends inject the topology their draw path consumes.
type Topology int

const (
	// TopologyStrip keeps each row's points as a connected strip, one
	// vertex per point. Suited to line-strip pipelines and scene lines.
	TopologyStrip Topology = iota

	// TopologySegments expands each adjacent point pair into an
	// independent segment, two vertices per pair. Suited to line-list
	// pipelines and CPU rasterizers that draw segment by segment.
	TopologySegments
)

// RowSpan locates one row's vertices inside a batch. Start and Count are
// in vertices; the corresponding float range of Positions is
// [2*Start, 2*(Start+Count)).
type RowSpan struct {
	Start int
	Count int
}

// VertexBatch is the flat geometry for one highlight group: interleaved
// x,y device-pixel positions, optional per-vertex r,g,b,a colors, and the
// per-row spans that let a backend issue row-granular draws.
type VertexBatch struct {
	Positions []float32
	Colors    []float32
	Rows      []RowSpan
}

// VertexCount returns the number of vertices in the batch.
func (b *VertexBatch) VertexCount() int {
	return len(b.Positions) / 2
}

// FrameBatches is the complete geometry of one frame, split by highlight
// group. ActiveCount and InactiveCount are the rows that contributed
// vertices; rows skipped as degenerate appear in neither.
type FrameBatches struct {
	Active        VertexBatch
	Inactive      VertexBatch
	ActiveCount   int
	InactiveCount int
}

// VertexCount returns the total vertices across both groups.
func (f *FrameBatches) VertexCount() int {
	return f.Active.VertexCount() + f.Inactive.VertexCount()
}

// Assembly converts a dataset to frame geometry under one backend's
// batching policy. Backends construct one Assembly at initialization and
// reuse it every frame.
type Assembly struct {
	// Topology is the vertex layout rows are expanded into.
	Topology Topology

	// VertexColors, when set, emits the group color once per vertex into
	// Colors. When clear, Colors stays empty and the backend applies the
	// group color out of band (uniforms, materials).
	VertexColors bool

	// Active and Inactive are the two group colors.
	Active   RGBA
	Inactive RGBA
}

// Assemble projects every row and gathers the results into per-group
// batches. Rows with fewer than two projected points cannot form a line
// and are skipped silently.
//
// Assemble allocates fresh batches each call and reads its inputs without
// modifying them, so successive calls over unchanged inputs yield equal
// results.
func (a *Assembly) Assemble(ds *Dataset, st *PlotState, pixelRatio float64) *FrameBatches {
	fb := &FrameBatches{}
	for _, row := range ds.Rows {
		pts := ProjectRow(row, st, pixelRatio)
		if len(pts) < 2 {
			continue
		}
		if ds.rowActive(row) {
			a.appendRow(&fb.Active, pts, a.Active)
			fb.ActiveCount++
		} else {
			a.appendRow(&fb.Inactive, pts, a.Inactive)
			fb.InactiveCount++
		}
	}
	return fb
}

// appendRow expands one projected polyline into batch vertices under the
// configured topology and records its span.
func (a *Assembly) appendRow(b *VertexBatch, pts []Point, c RGBA) {
	start := b.VertexCount()
	switch a.Topology {
	case TopologySegments:
		for i := 0; i+1 < len(pts); i++ {
			b.Positions = append(b.Positions,
				float32(pts[i].X), float32(pts[i].Y),
				float32(pts[i+1].X), float32(pts[i+1].Y))
		}
	default:
		for _, p := range pts {
			b.Positions = append(b.Positions, float32(p.X), float32(p.Y))
		}
	}
	count := b.VertexCount() - start
	if a.VertexColors {
		cf := c.Float32()
		for i := 0; i < count; i++ {
			b.Colors = append(b.Colors, cf[0], cf[1], cf[2], cf[3])
		}
	}
	b.Rows = append(b.Rows, RowSpan{Start: start, Count: count})
}
