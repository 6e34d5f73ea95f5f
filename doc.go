// Package pixibabylon coordinates two independently-authored GPU renderers --
// a 2D retained-mode stage renderer and a 3D scene engine -- sharing a single
// GPU context and surface.
//
// Both renderers assume they own the context exclusively: each caches GPU
// pipeline state and trusts that nothing else mutated it between its own draw
// calls. Interleaving them naively produces invisible corruption (wrong blend
// mode, stale texture binding, leaked framebuffer binding) that manifests as
// rendering glitches rather than errors. This module provides the glue that
// makes the interleaving safe:
//
//   - glstate: captures and restores a bounded set of GPU pipeline state
//     slots, so a span of foreign draw calls leaves no observable trace.
//   - frame: the per-frame orchestrator that sequences both renderers' draw
//     spans with a configurable ordering and cache-invalidation policy.
//   - bridge: captures the 2D renderer's output into an offscreen render
//     target and exposes the backing GPU texture to the 3D engine with no
//     CPU copy, correcting coordinate-origin and alpha-encoding mismatches
//     with a shader pass.
//   - registry: optional named association of (stage renderer, 3D scene)
//     pairs for callers that prefer ambient lookup over explicit references.
//   - software: CPU implementations of both renderer interfaces, useful for
//     headless rendering and tests.
//
// The renderers themselves are external collaborators. This package defines
// only the contracts they must satisfy: StageRenderer for the 2D side and
// SceneEngine for the 3D side. Construction and configuration of the
// renderers, their surfaces, cameras, and scene content remain the host
// application's responsibility.
//
// All rendering runs on a single thread driven by the host's display refresh
// callback. Correctness depends on strict temporal ordering within that
// thread, not on locks; see the frame package for the ownership discipline.
package pixibabylon
