package spcd3

// ProjectRow maps one row to its polyline in device pixels, one point per
// visible feature in axis order.
//
// The horizontal position of each point is the feature's axis position,
// with an in-flight drag position taking precedence over the resting scale
// position. The vertical position is the row's value for that feature put
// through the feature's scale. Both are scaled from logical to device
// pixels by pixelRatio.
//
// ProjectRow is pure: it reads row and st and writes neither. Every
// feature in st.Features must have an entry in st.YScales.
func ProjectRow(row Row, st *PlotState, pixelRatio float64) []Point {
	pts := make([]Point, 0, len(st.Features))
	for _, name := range st.Features {
		x := st.axisX(name) * pixelRatio
		y := st.YScales[name](row[name]) * pixelRatio
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}
