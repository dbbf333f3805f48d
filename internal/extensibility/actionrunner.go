// Package extensibility provides optional decorators over the named actions a
// statecraft.Engine invokes. It does not change how the engine selects or
// sequences actions — it only wraps the Action funcs an application
// registers, in the style of the teacher's pluggable ActionRunner
// (internal/extensibility/actionrunner.go), adapted here as function
// decorators rather than a wrapped-interface hierarchy since
// statecraft.Action has no error return to thread through a Run method.
package extensibility

import (
	"log"
	"time"

	"github.com/comalice/statecraft"
)

// WrapLogging returns an Action that logs before and after invoking action,
// including elapsed time, then delegates. name is used only for the log lines.
func WrapLogging(logger *log.Logger, name statecraft.ActionName, action statecraft.Action) statecraft.Action {
	return func(eng *statecraft.Engine, event *statecraft.Event) {
		logger.Printf("statecraft: running action %q for event %v", name, eventName(event))
		start := time.Now()
		action(eng, event)
		logger.Printf("statecraft: action %q completed in %v", name, time.Since(start))
	}
}

// WrapRecover returns an Action that recovers a panic from action and logs it
// instead of letting it propagate. Intended for actions registered with a
// SyncRunner, where an unrecovered panic would otherwise abort the caller's
// goroutine (AsyncRunner and TickRunner already recover at the runner level).
func WrapRecover(logger *log.Logger, name statecraft.ActionName, action statecraft.Action) statecraft.Action {
	return func(eng *statecraft.Engine, event *statecraft.Event) {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("statecraft: action %q panicked: %v", name, r)
			}
		}()
		action(eng, event)
	}
}

func eventName(event *statecraft.Event) statecraft.EventName {
	if event == nil {
		return ""
	}
	return event.Name
}
