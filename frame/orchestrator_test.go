package frame_test

import (
	"errors"
	"reflect"
	"testing"

	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/frame"
	"github.com/littleboarx/pixi-babylon/glstate"
	"github.com/littleboarx/pixi-babylon/software"
)

// tracingStage records a trace entry around each on-screen draw span.
type tracingStage struct {
	*software.Renderer
	trace *[]string
	err   error
}

func (s *tracingStage) Render(target pixibabylon.RenderTarget, root pixibabylon.Node, clear bool) error {
	*s.trace = append(*s.trace, "stage")
	if s.err != nil {
		return s.err
	}
	return s.Renderer.Render(target, root, clear)
}

// tracingEngine records a trace entry per engine render.
type tracingEngine struct {
	*software.Engine
	trace *[]string
}

func (e *tracingEngine) Render() error {
	*e.trace = append(*e.trace, "engine")
	return e.Engine.Render()
}

func newPair(t *testing.T, trace *[]string) (*tracingStage, *tracingEngine) {
	t.Helper()
	gl := glstate.NewMemContext()
	stage := &tracingStage{Renderer: software.NewRenderer(gl, 64, 64, 1), trace: trace}
	engine := &tracingEngine{Engine: software.NewEngine(gl), trace: trace}
	return stage, engine
}

func startOrchestrator(t *testing.T, stage pixibabylon.StageRenderer, engine pixibabylon.SceneEngine, opts ...frame.Option) *frame.Orchestrator {
	t.Helper()
	o, err := frame.New(stage, nil, engine, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	o.Start()
	t.Cleanup(o.Stop)
	return o
}

func TestNewValidation(t *testing.T) {
	gl := glstate.NewMemContext()
	stage := software.NewRenderer(gl, 8, 8, 1)
	engine := software.NewEngine(gl)

	if _, err := frame.New(nil, nil, engine); !errors.Is(err, frame.ErrNilStage) {
		t.Errorf("New(nil stage) error = %v, want ErrNilStage", err)
	}
	if _, err := frame.New(stage, nil, nil); !errors.Is(err, frame.ErrNilEngine) {
		t.Errorf("New(nil engine) error = %v, want ErrNilEngine", err)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	o, err := frame.New(stage, nil, engine)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if o.Running() {
		t.Error("new orchestrator must be stopped")
	}
	o.Start()
	o.Start()
	if !o.Running() {
		t.Error("Running() = false after Start")
	}
	o.Stop()
	o.Stop()
	if o.Running() {
		t.Error("Running() = true after Stop")
	}

	// Restartable.
	o.Start()
	if !o.Running() {
		t.Error("Running() = false after restart")
	}
	o.Stop()
}

func TestFrameOnStoppedOrchestratorIsNoOp(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	o, err := frame.New(stage, nil, engine)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := o.Frame(); err != nil {
		t.Errorf("Frame() on stopped orchestrator error = %v, want nil", err)
	}
	if len(trace) != 0 {
		t.Errorf("trace = %v, want empty", trace)
	}
}

func TestFrameDrawOrder(t *testing.T) {
	tests := []struct {
		name  string
		order frame.DrawOrder
		want  []string
	}{
		{"after", frame.DrawAfter, []string{"before", "engine", "stage", "after"}},
		{"before", frame.DrawBefore, []string{"before", "stage", "engine", "after"}},
		{"both", frame.DrawBoth, []string{"before", "stage", "engine", "stage", "after"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			stage, engine := newPair(t, &trace)
			o := startOrchestrator(t, stage, engine, frame.WithDrawOrder(tt.order))

			o.BeforeRender().Add(func() { trace = append(trace, "before") })
			o.AfterRender().Add(func() { trace = append(trace, "after") })

			if err := o.Frame(); err != nil {
				t.Fatalf("Frame() error = %v", err)
			}
			if !reflect.DeepEqual(trace, tt.want) {
				t.Errorf("frame trace = %v, want %v", trace, tt.want)
			}
		})
	}
}

func TestFrameSkipsEngineWithoutCamera(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	engine.SetActiveCamera(false)
	o := startOrchestrator(t, stage, engine)

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !reflect.DeepEqual(trace, []string{"stage"}) {
		t.Errorf("trace = %v, want [stage]", trace)
	}
	if engine.WipeCount() != 0 {
		t.Errorf("WipeCount() = %d, want 0 without camera", engine.WipeCount())
	}
}

func TestFrameWipeCaches(t *testing.T) {
	tests := []struct {
		name string
		opts []frame.Option
		want int
	}{
		{"default wipes", nil, 1},
		{"disabled", []frame.Option{frame.WithWipeCaches(false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			stage, engine := newPair(t, &trace)
			o := startOrchestrator(t, stage, engine, tt.opts...)

			if err := o.Frame(); err != nil {
				t.Fatalf("Frame() error = %v", err)
			}
			if engine.WipeCount() != tt.want {
				t.Errorf("WipeCount() = %d, want %d", engine.WipeCount(), tt.want)
			}
		})
	}
}

func TestFramePeerStateReset(t *testing.T) {
	tests := []struct {
		name string
		opts []frame.Option
		want int
	}{
		// Two resets bracket the single stage span.
		{"default resets", nil, 2},
		{"disabled", []frame.Option{frame.WithAutoResetPeerState(false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			stage, engine := newPair(t, &trace)
			o := startOrchestrator(t, stage, engine, tt.opts...)

			if err := o.Frame(); err != nil {
				t.Fatalf("Frame() error = %v", err)
			}
			if got := stage.ResetCount(); got != tt.want {
				t.Errorf("ResetCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrameUnbindsAfterStageSpan(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	gl := stage.Context()
	o := startOrchestrator(t, stage, engine)

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	// The stage renderer leaves its vertex array bound; the span cleanup
	// must have unbound it along with the framebuffer.
	if got := gl.VertexArrayBinding(); got != 0 {
		t.Errorf("vertex array binding after frame = %d, want 0", got)
	}
	if got := gl.FramebufferBinding(); got != 0 {
		t.Errorf("framebuffer binding after frame = %d, want 0", got)
	}
}

func TestFrameExplicitClears(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	gl := stage.Context()
	gl.SetStencilTest(true)

	o := startOrchestrator(t, stage, engine,
		frame.WithClearColor(pixibabylon.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}),
		frame.WithClearDepth(),
		frame.WithClearStencil(),
	)

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	mask := glstate.ClearColorBuffer | glstate.ClearDepthBuffer | glstate.ClearStencilBuffer
	if got := gl.ClearCalls(mask); got != 1 {
		t.Errorf("ClearCalls(color|depth|stencil) = %d, want 1", got)
	}
	if got := gl.ClearColor(); got != [4]float32{0.25, 0.5, 0.75, 1} {
		t.Errorf("clear color = %v, want [0.25 0.5 0.75 1]", got)
	}
	if gl.StencilTest() {
		t.Error("stencil test still enabled; must be disabled before the stencil clear")
	}
}

func TestFrameNoClearsByDefault(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	gl := stage.Context()
	o := startOrchestrator(t, stage, engine)

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	for _, mask := range []glstate.ClearMask{
		glstate.ClearColorBuffer,
		glstate.ClearDepthBuffer,
		glstate.ClearStencilBuffer,
	} {
		if got := gl.ClearCalls(mask); got != 0 {
			t.Errorf("ClearCalls(%b) = %d, want 0", mask, got)
		}
	}
}

func TestFrameDrawErrorsPropagate(t *testing.T) {
	errEngine := errors.New("engine draw failed")
	errStage := errors.New("stage draw failed")

	t.Run("engine error", func(t *testing.T) {
		var trace []string
		stage, engine := newPair(t, &trace)
		engine.SetRenderError(errEngine)
		o := startOrchestrator(t, stage, engine)

		if err := o.Frame(); !errors.Is(err, errEngine) {
			t.Errorf("Frame() error = %v, want engine error", err)
		}
	})

	t.Run("stage error", func(t *testing.T) {
		var trace []string
		stage, engine := newPair(t, &trace)
		stage.err = errStage
		o := startOrchestrator(t, stage, engine)

		afterRan := false
		o.AfterRender().Add(func() { afterRan = true })

		if err := o.Frame(); !errors.Is(err, errStage) {
			t.Errorf("Frame() error = %v, want stage error", err)
		}
		if afterRan {
			t.Error("after-render hooks ran despite aborted frame")
		}
	})
}

func TestFrameObserverPanicDoesNotAbortFrame(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	o := startOrchestrator(t, stage, engine)

	o.BeforeRender().Add(func() { panic("observer failure") })
	o.BeforeRender().Add(func() { trace = append(trace, "before-2") })

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	want := []string{"before-2", "engine", "stage"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestCurrentTracksStartStop(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	o, err := frame.New(stage, nil, engine)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if frame.Current() != nil {
		t.Fatal("Current() non-nil before any Start")
	}
	o.Start()
	if frame.Current() != o {
		t.Error("Current() != started orchestrator")
	}
	o.Stop()
	if frame.Current() != nil {
		t.Error("Current() non-nil after Stop")
	}
}

func TestStopTearsDownHooks(t *testing.T) {
	var trace []string
	stage, engine := newPair(t, &trace)
	o := startOrchestrator(t, stage, engine)

	o.BeforeRender().Add(func() { trace = append(trace, "before") })
	o.Stop()
	o.Start()

	if err := o.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	for _, entry := range trace {
		if entry == "before" {
			t.Error("hook survived Stop; notification lists must be torn down")
		}
	}
}

func TestDebugGuardCatchesNestedSpans(t *testing.T) {
	frame.SetDebug(true)
	defer frame.SetDebug(false)

	var trace []string
	gl := glstate.NewMemContext()
	stage := &tracingStage{Renderer: software.NewRenderer(gl, 8, 8, 1), trace: &trace}
	engine := &reentrantEngine{Engine: software.NewEngine(gl)}
	o := startOrchestrator(t, stage, engine)
	engine.orch = o

	defer func() {
		if recover() == nil {
			t.Error("expected debug guard panic on nested span")
		}
	}()
	_ = o.Frame()
}

// reentrantEngine illegally re-enters the orchestrator from its own draw.
type reentrantEngine struct {
	*software.Engine
	orch *frame.Orchestrator
}

func (e *reentrantEngine) Render() error {
	return e.orch.Frame()
}
