package scenegraph

import (
	"errors"
	"strconv"
	"testing"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
)

func numericScale(value string) float64 {
	v, _ := strconv.ParseFloat(value, 64)
	return v
}

func plotState(features ...string) *spcd3.PlotState {
	xs := make(map[string]float64, len(features))
	ys := make(map[string]spcd3.ScaleFunc, len(features))
	for i, name := range features {
		xs[name] = float64(10 + i*20)
		ys[name] = numericScale
	}
	return &spcd3.PlotState{
		Features: features,
		XScales:  func(name string) float64 { return xs[name] },
		YScales:  ys,
	}
}

func dataset(rows ...spcd3.Row) *spcd3.Dataset {
	return &spcd3.Dataset{
		Rows:     rows,
		Identity: func(r spcd3.Row) string { return r["id"] },
	}
}

func TestRegistered(t *testing.T) {
	if !spcd3.IsRegistered(spcd3.BackendScenegraph) {
		t.Fatal("scenegraph backend not registered on import")
	}
	if b := spcd3.Get(spcd3.BackendScenegraph); b == nil || b.Name() != spcd3.BackendScenegraph {
		t.Fatalf("Get(scenegraph) = %v", b)
	}
}

func TestInitializeNilSurface(t *testing.T) {
	b := New()
	if err := b.Initialize(nil); !errors.Is(err, spcd3.ErrNilSurface) {
		t.Errorf("Initialize(nil) = %v, want ErrNilSurface", err)
	}
}

func TestRedrawBeforeInitialize(t *testing.T) {
	b := New()
	err := b.Redraw(dataset(), plotState("a", "b"))
	if !errors.Is(err, spcd3.ErrNotInitialized) {
		t.Errorf("Redraw = %v, want ErrNotInitialized", err)
	}
}

func TestRedrawStrokesRow(t *testing.T) {
	surface := spcd3.NewSurface(60, 30)
	b := New()
	b.SetColors(spcd3.RGBA{1, 0, 0, 1}, spcd3.RGBA{0, 0, 1, 1})
	b.SetLineWidth(3)
	if err := b.Initialize(surface); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	// One row at constant height 10: a horizontal stroke from x=10 to
	// x=30.
	ds := dataset(spcd3.Row{"id": "r0", "a": "10", "b": "10"})
	if err := b.Redraw(ds, plotState("a", "b")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}

	got := surface.GetPixel(20, 10)
	if got.R < 0.9 || got.A < 0.9 {
		t.Errorf("pixel on stroke = %v, want opaque red", got)
	}
	if got := surface.GetPixel(20, 2); got.A != 0 {
		t.Errorf("pixel off stroke = %v, want untouched", got)
	}

	stats := b.Stats()
	if stats.ActiveRows != 1 || stats.Vertices != 2 || stats.DrawCalls != 1 {
		t.Errorf("stats = %+v, want 1 row, 2 vertices, 1 draw", stats)
	}
}

func TestRedrawRebuildsScene(t *testing.T) {
	surface := spcd3.NewSurface(60, 40)
	b := New()
	b.SetColors(spcd3.RGBA{1, 0, 0, 1}, spcd3.RGBA{0, 0, 1, 1})
	b.SetLineWidth(3)
	if err := b.Initialize(surface); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	st := plotState("a", "b")
	ds := dataset(spcd3.Row{"id": "r0", "a": "10", "b": "10"})
	if err := b.Redraw(ds, st); err != nil {
		t.Fatalf("first Redraw() = %v", err)
	}

	// Second frame with a different row. The first row must not leak
	// into the new scene.
	ds2 := dataset(spcd3.Row{"id": "r1", "a": "30", "b": "30"})
	surface.Clear(spcd3.Transparent)
	if err := b.Redraw(ds2, st); err != nil {
		t.Fatalf("second Redraw() = %v", err)
	}

	if got := surface.GetPixel(20, 10); got.A != 0 {
		t.Errorf("stale row pixel = %v, want transparent after rebuild", got)
	}
	if got := surface.GetPixel(20, 30); got.A < 0.9 {
		t.Errorf("new row pixel = %v, want stroked", got)
	}
	if got := b.Stats().DrawCalls; got != 1 {
		t.Errorf("DrawCalls = %d, want 1", got)
	}
}

func TestRedrawGroupOrder(t *testing.T) {
	surface := spcd3.NewSurface(60, 30)
	b := New()
	b.SetColors(spcd3.RGBA{1, 0, 0, 1}, spcd3.RGBA{0, 0, 1, 1})
	b.SetLineWidth(3)
	if err := b.Initialize(surface); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	// Identical geometry, one row deselected: the active stroke is
	// traversed last and wins.
	ds := dataset(
		spcd3.Row{"id": "r0", "a": "10", "b": "10"},
		spcd3.Row{"id": "r1", "a": "10", "b": "10"},
	)
	ds.States = spcd3.StateLookup{"r0": {Active: false}}

	if err := b.Redraw(ds, plotState("a", "b")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}

	if got := surface.GetPixel(20, 10); got.R < 0.9 || got.B > 0.1 {
		t.Errorf("overlap pixel = %v, want active red on top", got)
	}
	stats := b.Stats()
	if stats.ActiveRows != 1 || stats.InactiveRows != 1 || stats.DrawCalls != 2 {
		t.Errorf("stats = %+v, want 1/1 rows and 2 draws", stats)
	}
}

func TestRedrawSkipsSingleFeatureRows(t *testing.T) {
	surface := spcd3.NewSurface(40, 20)
	b := New()
	if err := b.Initialize(surface); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	ds := dataset(spcd3.Row{"id": "r0", "a": "10"})
	if err := b.Redraw(ds, plotState("a")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}
	if got := b.Stats(); got.Vertices != 0 || got.DrawCalls != 0 {
		t.Errorf("stats = %+v, want no geometry and no draws", got)
	}
}

func TestClose(t *testing.T) {
	b := New()
	if err := b.Initialize(spcd3.NewSurface(10, 10)); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := b.Redraw(dataset(), plotState("a", "b")); !errors.Is(err, spcd3.ErrNotInitialized) {
		t.Errorf("Redraw after Close = %v, want ErrNotInitialized", err)
	}
}
