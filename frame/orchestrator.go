package frame

import (
	"errors"
	"sync"

	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/glstate"
)

// Construction errors.
var (
	// ErrNilStage is returned when New is called without a stage renderer.
	ErrNilStage = errors.New("frame: nil stage renderer")

	// ErrNilEngine is returned when New is called without a scene engine.
	ErrNilEngine = errors.New("frame: nil scene engine")
)

// Orchestrator drives the combined per-frame render sequence of a stage
// renderer and a scene engine sharing one GPU context.
//
// The orchestrator has two states, Stopped and Running, with no
// intermediates. Start and Stop are idempotent. While Running, the host
// calls Frame from its display refresh callback; every step of the frame
// runs synchronously on that callback, nothing blocks or defers GPU
// submission.
//
// Per-frame sequence:
//
//  1. "before render" hooks (ordered, fault-isolated)
//  2. explicit clears, if configured
//  3. stage span, if the draw order is Before or Both
//  4. engine cache wipe + engine render, if it has an active camera
//  5. stage span, if the draw order is After or Both
//  6. "after render" hooks
//
// A stage span is the isolated-render procedure: reset the stage
// renderer's state cache, draw, reset again, then unbind the vertex array
// and framebuffer it left active. The engine must observe an unbound
// framebuffer on every call into it or it silently draws into the wrong
// target.
//
// A failure from either renderer's draw call propagates out of Frame
// un-retried: GPU state after a failed draw is not trusted, so swallowing
// the error would leave the next frame on corrupt state. The host decides
// whether to Stop the loop.
type Orchestrator struct {
	stage  pixibabylon.StageRenderer
	root   pixibabylon.Node
	engine pixibabylon.SceneEngine
	cfg    config

	mu      sync.Mutex
	running bool

	beforeRender HookList
	afterRender  HookList
	guard        ownerGuard
}

// New creates an orchestrator for the given stage renderer, 2D root node
// and scene engine. The root may be nil if the stage has nothing to draw
// on-screen (offscreen bridges render their own content). Options default
// to: draw order After, cache wiping on, peer state resetting on, no
// explicit clears.
func New(stage pixibabylon.StageRenderer, root pixibabylon.Node, engine pixibabylon.SceneEngine, opts ...Option) (*Orchestrator, error) {
	if stage == nil {
		return nil, ErrNilStage
	}
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Orchestrator{
		stage:  stage,
		root:   root,
		engine: engine,
		cfg:    cfg,
	}, nil
}

// Start moves the orchestrator to Running and makes it the current
// orchestrator for ambient lookup. Start from Running is a no-op.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return
	}
	o.running = true
	o.mu.Unlock()

	setCurrent(o)
}

// Stop moves the orchestrator to Stopped and tears down both notification
// lists. Stop from Stopped is a no-op. A caller awaiting a one-shot
// before-render registration at this point never resolves; see the bridge
// package's Render documentation. The orchestrator is restartable, but
// subscribers must re-register after a restart.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	o.mu.Unlock()

	o.beforeRender.Clear()
	o.afterRender.Clear()
	clearCurrent(o)
}

// Running reports whether the orchestrator is in the Running state.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// BeforeRender returns the "before render" notification list.
func (o *Orchestrator) BeforeRender() *HookList { return &o.beforeRender }

// AfterRender returns the "after render" notification list.
func (o *Orchestrator) AfterRender() *HookList { return &o.afterRender }

// DrawOrder returns the configured draw order policy.
func (o *Orchestrator) DrawOrder() DrawOrder { return o.cfg.drawOrder }

// Frame runs one combined frame. The host calls it from its display
// refresh callback. On a stopped orchestrator Frame logs a warning and
// does nothing. Draw-call failures propagate; notification hook failures
// do not.
func (o *Orchestrator) Frame() error {
	if !o.Running() {
		pixibabylon.Logger().Warn("frame: Frame called on stopped orchestrator")
		return nil
	}

	o.beforeRender.Notify()
	o.applyClears()

	if o.cfg.drawOrder == DrawBefore || o.cfg.drawOrder == DrawBoth {
		if err := o.stageSpan(); err != nil {
			return err
		}
	}

	if err := o.engineSpan(); err != nil {
		return err
	}

	if o.cfg.drawOrder == DrawAfter || o.cfg.drawOrder == DrawBoth {
		if err := o.stageSpan(); err != nil {
			return err
		}
	}

	o.afterRender.Notify()
	return nil
}

// applyClears performs the configured explicit clears, once per frame,
// before either renderer draws. The stencil test is disabled before a
// stencil clear since the renderers disagree on its default.
func (o *Orchestrator) applyClears() {
	var mask glstate.ClearMask
	gl := o.stage.GLContext()

	if o.cfg.clearColor != nil {
		col := *o.cfg.clearColor
		gl.SetClearColor(col.R, col.G, col.B, col.A)
		mask |= glstate.ClearColorBuffer
	}
	if o.cfg.clearDepth {
		mask |= glstate.ClearDepthBuffer
	}
	if o.cfg.clearStencil {
		gl.SetStencilTest(false)
		mask |= glstate.ClearStencilBuffer
	}

	if mask != 0 {
		gl.Clear(mask)
	}
}

// stageSpan runs the isolated-render procedure for the stage renderer
// against the default framebuffer. On a draw failure the cleanup steps are
// skipped and the error propagates: the state is not trusted anyway.
func (o *Orchestrator) stageSpan() error {
	o.guard.enter("stage")
	defer o.guard.exit()

	if o.cfg.autoResetPeerState {
		o.stage.ResetState()
	}

	if err := o.stage.Render(nil, o.root, false); err != nil {
		return err
	}

	if o.cfg.autoResetPeerState {
		o.stage.ResetState()
	}

	gl := o.stage.GLContext()
	gl.BindVertexArray(0)
	gl.BindFramebuffer(0)
	return nil
}

// engineSpan wipes the engine's lazily cached pipeline state and renders
// its scene. Without an active camera the engine has nothing to draw and
// the span is skipped entirely, including the cache wipe.
func (o *Orchestrator) engineSpan() error {
	if !o.engine.HasActiveCamera() {
		return nil
	}

	o.guard.enter("engine")
	defer o.guard.exit()

	if o.cfg.wipeCaches {
		o.engine.WipeCaches()
	}
	return o.engine.Render()
}

// current tracks the most recently started orchestrator for ambient
// lookup by the bridge package when no explicit orchestrator is supplied.
var (
	currentMu sync.Mutex
	current   *Orchestrator
)

// Current returns the most recently started orchestrator that is still
// running, or nil.
func Current() *Orchestrator {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current
}

func setCurrent(o *Orchestrator) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = o
}

func clearCurrent(o *Orchestrator) {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current == o {
		current = nil
	}
}
