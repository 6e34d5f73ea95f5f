// Package software provides CPU implementations of the StageRenderer and
// SceneEngine contracts over image.RGBA pixels and an in-memory GL state
// context.
//
// The software pair mirrors the real GPU renderers closely enough to
// exercise the coordination machinery without a GPU: the stage renderer
// leaves its vertex-array and framebuffer bindings behind after a draw the
// way a real retained-mode renderer does, render targets are backed by raw
// straight-alpha pixel buffers the engine "samples", and the correction
// pass runs its CPU reference implementation. It is the vehicle for
// headless rendering and for the package's behavioral tests.
package software
