package frame

import (
	"fmt"
	"sync/atomic"
)

// debugMode gates the owner-span assertions. Off by default; the checks
// cost a comparison per span when enabled.
var debugMode atomic.Bool

// SetDebug enables or disables debug-mode assertions. With debug on,
// entering a renderer's draw span while another span is still open panics,
// catching foreign draw calls that would corrupt shared state mid-span.
func SetDebug(enabled bool) { debugMode.Store(enabled) }

// Debug reports whether debug-mode assertions are enabled.
func Debug() bool { return debugMode.Load() }

// ownerGuard tracks which renderer currently owns the shared context
// between a captured state boundary and its matching restore. The render
// model is single-threaded, so a plain field suffices.
type ownerGuard struct {
	owner string
}

func (g *ownerGuard) enter(name string) {
	if Debug() && g.owner != "" {
		panic(fmt.Sprintf("frame: %s draw span entered while %s span is open", name, g.owner))
	}
	g.owner = name
}

func (g *ownerGuard) exit() {
	g.owner = ""
}
