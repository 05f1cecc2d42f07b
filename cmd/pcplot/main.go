// Command pcplot renders a parallel-coordinates plot from a CSV file.
//
// The first CSV column is the row identifier; every remaining column
// becomes a plot axis with a linear scale fitted to the column's value
// range. Without -input a built-in sample dataset is rendered, so the
// command works out of the box:
//
//	pcplot -output plot.png
//	pcplot -input data.csv -select alpha,delta -backend scenegraph
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
	_ "github.com/filip-ljubotina/iawu-spcd3/backend/scenegraph"
	_ "github.com/filip-ljubotina/iawu-spcd3/backend/software"
)

// margin keeps lines away from the image edge, in logical pixels.
const margin = 40.0

func main() {
	var (
		input     = flag.String("input", "", "input CSV file (first column is the row id)")
		output    = flag.String("output", "plot.png", "output PNG file")
		width     = flag.Int("width", 800, "image width in logical pixels")
		height    = flag.Int("height", 600, "image height in logical pixels")
		ratio     = flag.Float64("ratio", 1, "device pixel ratio")
		backend   = flag.String("backend", "", "rendering backend (default: best available)")
		selected  = flag.String("select", "", "comma-separated row ids to highlight; all others render dimmed")
		active    = flag.String("active", "", "highlight color as hex, e.g. #0081af")
		inactive  = flag.String("inactive", "", "dimmed color as hex")
		lineWidth = flag.Float64("line-width", 0, "stroke width in logical pixels (0 = backend default)")
	)
	flag.Parse()

	ds, features, err := loadRows(*input)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}
	if len(features) < 2 {
		log.Fatalf("Need at least 2 feature columns, got %d", len(features))
	}
	applySelection(ds, *selected)

	st := fitScales(ds, features, float64(*width), float64(*height))

	if *ratio <= 0 {
		*ratio = 1
	}
	surface := spcd3.NewSurface(int(float64(*width)**ratio), int(float64(*height)**ratio))
	surface.SetPixelRatio(*ratio)

	var opts []spcd3.RendererOption
	if *backend != "" {
		opts = append(opts, spcd3.WithBackend(*backend))
	}
	if *active != "" || *inactive != "" {
		a, i := spcd3.DefaultActiveColor, spcd3.DefaultInactiveColor
		if *active != "" {
			a = spcd3.Hex(*active)
		}
		if *inactive != "" {
			i = spcd3.Hex(*inactive)
		}
		opts = append(opts, spcd3.WithColors(a, i))
	}
	if *lineWidth > 0 {
		opts = append(opts, spcd3.WithLineWidth(*lineWidth))
	}

	r := spcd3.NewFrameRenderer(surface, opts...)
	if err := r.Initialize(); err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}
	defer r.Close()

	if err := r.Redraw(ds, st); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := surface.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats := r.Stats()
	log.Printf("Plot saved to %s (%dx%d, %d rows, %d axes, backend %s)\n",
		*output, surface.Width(), surface.Height(),
		stats.ActiveRows+stats.InactiveRows, len(features), r.BackendName())
}

// loadRows reads a CSV file into a dataset. The header row names the
// columns; the first column identifies rows and the rest are features.
// An empty path yields the built-in sample dataset.
func loadRows(path string) (*spcd3.Dataset, []string, error) {
	if path == "" {
		return sampleRows()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := records[0]
	idCol := header[0]
	features := header[1:]

	rows := make([]spcd3.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(spcd3.Row, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	ds := &spcd3.Dataset{
		Rows:     rows,
		Identity: func(r spcd3.Row) string { return r[idCol] },
	}
	return ds, features, nil
}

// sampleRows returns a small built-in dataset for demonstration.
func sampleRows() (*spcd3.Dataset, []string, error) {
	features := []string{"throughput", "latency", "errors", "cost"}
	raw := []struct {
		id     string
		values [4]string
	}{
		{"alpha", [4]string{"120", "3.1", "0.2", "41"}},
		{"bravo", [4]string{"98", "4.5", "1.1", "35"}},
		{"charlie", [4]string{"143", "2.4", "0.4", "58"}},
		{"delta", [4]string{"77", "6.8", "2.3", "22"}},
		{"echo", [4]string{"131", "2.9", "0.1", "49"}},
		{"foxtrot", [4]string{"105", "3.8", "0.9", "38"}},
		{"golf", [4]string{"88", "5.2", "1.7", "27"}},
		{"hotel", [4]string{"150", "2.1", "0.3", "63"}},
	}

	rows := make([]spcd3.Row, 0, len(raw))
	for _, r := range raw {
		row := spcd3.Row{"name": r.id}
		for i, feature := range features {
			row[feature] = r.values[i]
		}
		rows = append(rows, row)
	}

	ds := &spcd3.Dataset{
		Rows:     rows,
		Identity: func(r spcd3.Row) string { return r["name"] },
	}
	return ds, features, nil
}

// applySelection dims every row whose id is not in the comma-separated
// list. An empty list leaves all rows highlighted.
func applySelection(ds *spcd3.Dataset, selected string) {
	if selected == "" {
		return
	}
	chosen := make(map[string]bool)
	for _, id := range strings.Split(selected, ",") {
		chosen[strings.TrimSpace(id)] = true
	}
	states := make(spcd3.StateLookup, len(ds.Rows))
	for _, row := range ds.Rows {
		id := ds.Identity(row)
		states[id] = spcd3.LineState{Active: chosen[id]}
	}
	ds.States = states
}

// fitScales lays the axes out evenly across the width and fits each
// axis's linear scale to its column's value range, larger values up.
func fitScales(ds *spcd3.Dataset, features []string, width, height float64) *spcd3.PlotState {
	innerW := width - 2*margin

	xs := make(map[string]float64, len(features))
	step := 0.0
	if len(features) > 1 {
		step = innerW / float64(len(features)-1)
	}
	for i, name := range features {
		xs[name] = margin + float64(i)*step
	}

	ys := make(map[string]spcd3.ScaleFunc, len(features))
	for _, name := range features {
		lo, hi := columnRange(ds, name)
		ys[name] = spcd3.LinearScale(lo, hi, margin, height-margin)
	}

	return &spcd3.PlotState{
		Features: features,
		XScales:  func(name string) float64 { return xs[name] },
		YScales:  ys,
	}
}

// columnRange returns the numeric min and max of a column. Values that
// fail to parse are ignored; an empty or constant column yields lo == hi.
func columnRange(ds *spcd3.Dataset, name string) (lo, hi float64) {
	first := true
	for _, row := range ds.Rows {
		v, err := strconv.ParseFloat(row[name], 64)
		if err != nil {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
