//go:build nogpu

package webgpu

import spcd3 "github.com/filip-ljubotina/iawu-spcd3"

// init registers a nil-returning factory when the nogpu tag is set.
// This allows code to compile without GPU support while still allowing
// spcd3.Get(spcd3.BackendWebGPU) to return nil gracefully.
func init() {
	spcd3.Register(spcd3.BackendWebGPU, func() spcd3.Backend {
		return nil
	})
}
