// Package spcd3 renders parallel-coordinates plots.
//
// # Overview
//
// spcd3 draws one polyline per dataset row across a set of vertical feature
// axes, colored by a binary active/inactive highlight state. The package
// re-derives screen-space geometry from the dataset and the per-frame axis
// state on every redraw, batches the result per highlight group, and hands
// it to one of three interchangeable rendering backends.
//
// # Quick Start
//
//	import (
//	    spcd3 "github.com/filip-ljubotina/iawu-spcd3"
//	    _ "github.com/filip-ljubotina/iawu-spcd3/backend/software"
//	)
//
//	target := spcd3.NewSurface(800, 600)
//	r := spcd3.NewFrameRenderer(target, spcd3.WithBackend(spcd3.BackendSoftware))
//	if err := r.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Redraw(dataset, state); err != nil {
//	    log.Fatal(err)
//	}
//	target.SavePNG("plot.png")
//
// # Architecture
//
// The package is organized into:
//   - Core: ProjectRow (row to screen points), Assembly (per-group vertex
//     batches), FrameRenderer (redraw orchestration)
//   - Backends: webgpu (explicit GPU pipeline via gogpu/wgpu), software
//     (immediate-mode CPU rasterization), scenegraph (retained line scene)
//   - Support: Surface (pixel target), scene (line-node layer),
//     internal/raster (segment scanning)
//
// Backends register themselves on import. Selection happens by name through
// WithBackend, or by priority (webgpu, scenegraph, software) when no name
// is given.
//
// # Coordinate System
//
// All projected coordinates are device pixels with the origin at the
// top-left, x increasing right and y increasing down. Backends that need a
// different clip-space convention flip internally; callers never do.
//
// # Frame Model
//
// Every Redraw rebuilds vertex data from scratch and presents exactly one
// frame. Nothing about a frame is retained except the backend's reusable
// device resources (pipelines, persistent buffers), which are created once
// at Initialize.
package spcd3

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
