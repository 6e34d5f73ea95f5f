package frame

import (
	"sync"

	pixibabylon "github.com/littleboarx/pixi-babylon"
)

// Hook is a render notification callback. Hooks run synchronously on the
// render thread, in registration order.
type Hook func()

type hookEntry struct {
	id   uint64
	fn   Hook
	once bool
}

// HookList is an ordered list of render notification callbacks.
//
// Notify invokes every registered hook synchronously in registration order.
// Each hook is individually fault-isolated: a panicking hook is recovered
// and logged, and the remaining hooks still run. No ordering is guaranteed
// between different subscribers beyond registration order.
//
// The zero value is ready to use. Registration and removal are guarded by a
// mutex so setup code on other goroutines cannot corrupt the list, but
// Notify itself is expected to run on the single render thread.
type HookList struct {
	mu     sync.Mutex
	nextID uint64
	hooks  []hookEntry
}

// Add registers fn and returns a function that removes the registration.
// The remove function is idempotent.
func (l *HookList) Add(fn Hook) (remove func()) {
	return l.add(fn, false)
}

// AddOnce registers fn to run at the next Notify only. The registration is
// consumed before the hook runs, so it fires at most once even if the hook
// itself panics. The returned function cancels the registration if it has
// not fired yet.
func (l *HookList) AddOnce(fn Hook) (remove func()) {
	return l.add(fn, true)
}

func (l *HookList) add(fn Hook, once bool) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.hooks = append(l.hooks, hookEntry{id: id, fn: fn, once: once})

	return func() { l.remove(id) }
}

func (l *HookList) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.hooks {
		if e.id == id {
			l.hooks = append(l.hooks[:i], l.hooks[i+1:]...)
			return
		}
	}
}

// Clear removes all registrations.
func (l *HookList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hooks = nil
}

// Len returns the number of registered hooks.
func (l *HookList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.hooks)
}

// Notify runs all registered hooks in registration order. One-shot
// registrations are consumed first, so a hook added with AddOnce never
// observes a second frame.
func (l *HookList) Notify() {
	l.mu.Lock()
	run := make([]hookEntry, len(l.hooks))
	copy(run, l.hooks)
	kept := l.hooks[:0]
	for _, e := range l.hooks {
		if !e.once {
			kept = append(kept, e)
		}
	}
	l.hooks = kept
	l.mu.Unlock()

	for _, e := range run {
		runHook(e.fn)
	}
}

// runHook isolates a single hook invocation: a panic is recovered and
// logged so subsequent hooks still run.
func runHook(fn Hook) {
	defer func() {
		if r := recover(); r != nil {
			pixibabylon.Logger().Warn("frame: render observer panicked", "panic", r)
		}
	}()
	fn()
}
