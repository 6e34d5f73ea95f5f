package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/littleboarx/pixi-babylon/glstate"
	"github.com/littleboarx/pixi-babylon/registry"
	"github.com/littleboarx/pixi-babylon/software"
)

func newPair() (*software.Renderer, *software.Scene) {
	gl := glstate.NewMemContext()
	stage := software.NewRenderer(gl, 8, 8, 1)
	scene := software.NewScene(software.NewEngine(gl))
	return stage, scene
}

func TestSwitchToMissingOnEmptyRegistry(t *testing.T) {
	r := registry.NewRegistry()

	err := r.SwitchTo("missing")
	var notFound *registry.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("SwitchTo() error = %v, want NotFoundError", err)
	}
	if notFound.Name != "missing" {
		t.Errorf("NotFoundError.Name = %q, want %q", notFound.Name, "missing")
	}
	if _, ok := r.Active(); ok {
		t.Error("Active() reported an entry after failed SwitchTo")
	}
}

func TestSwitchToMissingLeavesActiveUnchanged(t *testing.T) {
	r := registry.NewRegistry()
	stage, scene := newPair()
	r.Register("main", stage, scene)
	if err := r.SwitchTo("main"); err != nil {
		t.Fatalf("SwitchTo(main) error = %v", err)
	}

	if err := r.SwitchTo("missing"); err == nil {
		t.Fatal("SwitchTo(missing) error = nil, want NotFoundError")
	}

	entry, ok := r.Active()
	if !ok || entry.Name != "main" {
		t.Errorf("active entry = %+v, %v; want main", entry, ok)
	}
}

func TestRegisterOverwrites(t *testing.T) {
	r := registry.NewRegistry()
	stage1, scene1 := newPair()
	stage2, scene2 := newPair()

	r.Register("main", stage1, scene1)
	if err := r.SwitchTo("main"); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}
	r.Register("main", stage2, scene2)

	entry, ok := r.Active()
	if !ok {
		t.Fatal("Active() = none after overwrite")
	}
	if entry.Stage != stage2 {
		t.Error("overwritten entry still holds the old stage renderer")
	}
}

func TestUnregisterClearsActive(t *testing.T) {
	r := registry.NewRegistry()
	stage, scene := newPair()
	r.Register("main", stage, scene)
	if err := r.SwitchTo("main"); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}

	r.Unregister("main")

	if _, ok := r.Active(); ok {
		t.Error("Active() reported an entry after unregistering it")
	}
	if _, ok := r.Get("main"); ok {
		t.Error("Get() found an unregistered entry")
	}

	// Unregistering an absent name is a no-op.
	r.Unregister("main")
}

func TestUnregisterOtherKeepsActive(t *testing.T) {
	r := registry.NewRegistry()
	stage, scene := newPair()
	r.Register("a", stage, scene)
	r.Register("b", stage, scene)
	if err := r.SwitchTo("a"); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}

	r.Unregister("b")

	entry, ok := r.Active()
	if !ok || entry.Name != "a" {
		t.Errorf("active entry = %+v, %v; want a", entry, ok)
	}
}

func TestList(t *testing.T) {
	r := registry.NewRegistry()
	stage, scene := newPair()
	r.Register("zeta", stage, scene)
	r.Register("alpha", stage, scene)

	if got, want := r.List(), []string{"alpha", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestDefaultRegistry(t *testing.T) {
	stage, scene := newPair()
	registry.Register("default-registry-test", stage, scene)
	t.Cleanup(func() { registry.Unregister("default-registry-test") })

	if err := registry.SwitchTo("default-registry-test"); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}
	entry, ok := registry.Active()
	if !ok || entry.Name != "default-registry-test" {
		t.Errorf("Active() = %+v, %v", entry, ok)
	}

	registry.Unregister("default-registry-test")
	if _, ok := registry.Active(); ok {
		t.Error("Active() reported an entry after Unregister")
	}
}
