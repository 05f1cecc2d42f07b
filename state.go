package spcd3

import "strconv"

// ScaleFunc maps a raw feature value to a vertical position in logical
// (CSS) pixels, top-left origin, y growing downward.
type ScaleFunc func(value string) float64

// LinearScale returns a ScaleFunc that maps numeric values in [lo, hi]
// linearly onto vertical positions in [top, bottom], larger values up.
// Values that fail to parse map to lo; a degenerate range pins every
// value to the vertical midpoint.
func LinearScale(lo, hi, top, bottom float64) ScaleFunc {
	return func(value string) float64 {
		if hi == lo {
			return top + (bottom-top)/2
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			v = lo
		}
		t := (v - lo) / (hi - lo)
		return top + (1-t)*(bottom-top)
	}
}

// PlotState captures the interactive state of the plot at the moment a
// frame is rendered: which features are shown in which order, where each
// axis sits horizontally, how values map to vertical positions, and any
// in-flight axis drags.
//
// PlotState is read, never written, by the rendering path. The embedding
// application owns it and mutates it between frames.
type PlotState struct {
	// Features lists the visible feature names in axis order. Axis order
	// is point order in every projected polyline.
	Features []string

	// XScales returns the resting horizontal position of a feature's
	// axis in logical pixels.
	XScales func(name string) float64

	// YScales holds the per-feature vertical scale. Every name in
	// Features must have an entry.
	YScales map[string]ScaleFunc

	// Dragging maps features currently being dragged to their live
	// horizontal position. A dragged feature's entry overrides XScales
	// until the drag ends and the entry is removed.
	Dragging map[string]float64
}

// axisX resolves the horizontal position of one axis, preferring an
// in-flight drag position over the resting scale position.
func (st *PlotState) axisX(name string) float64 {
	if x, ok := st.Dragging[name]; ok {
		return x
	}
	return st.XScales(name)
}
