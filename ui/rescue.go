package ui

import "fmt"

// RescueError is what a captured build/reconcile/layout/render panic
// becomes (§4.4, §7): never a bare error string, always carrying the stage
// it happened in and the original recovered value.
type RescueError struct {
	Stage string // "build", "reconcile", "layout" (measure and arrange), "render"
	Cause any
}

func (e *RescueError) Error() string {
	return fmt.Sprintf("ui: rescued panic during %s: %v", e.Stage, e.Cause)
}

// RescueObserver is notified whenever the rescue wrapper catches a panic,
// per §7's "an observer callback is invoked" — typically wired to the
// ambient logger (§4.8).
type RescueObserver func(err *RescueError)

// Rescue runs fn, recovering any panic into a *RescueError tagged with
// stage and reporting it to observe (nil-safe). It returns the recovered
// error, or nil if fn completed normally.
func Rescue(stage string, observe RescueObserver, fn func()) (err *RescueError) {
	defer func() {
		if r := recover(); r != nil {
			err = &RescueError{Stage: stage, Cause: r}
			if observe != nil {
				observe(err)
			}
		}
	}()
	fn()
	return nil
}
