// Package host defines the surface the coordination core needs from the
// embedding application. The core never touches UI widgets; it only
// schedules main-loop callbacks and applies typed results through this
// interface.
package host

import "time"

// TimerHandle identifies a registered recurring callback.
type TimerHandle any

// Host is implemented by the embedding application. All methods except
// AddTimer/RemoveTimer are only ever called from the application's main
// loop, where mutating application state is safe.
type Host interface {
	// AddTimer schedules fn to run at a fixed interval on the thread that
	// owns application state.
	AddTimer(interval time.Duration, fn func()) TimerHandle
	RemoveTimer(handle TimerHandle)

	// ReportWarning surfaces a user-visible warning.
	ReportWarning(msg string)

	// LoadImage loads a saved image file as a viewable asset.
	LoadImage(path string) error

	// WriteText appends text to a named text buffer, creating it if needed.
	WriteText(name, text string)

	// AddTextStrip creates an inline text strip on a sequencer channel.
	AddTextStrip(channel, start, end int, text string)

	// FocusTopic marks a conversation topic as active.
	FocusTopic(topic string)

	// ShowCode displays generated code in a text editor.
	ShowCode(name, code string)

	// ExecuteCode runs generated code inside the application. The returned
	// error is recorded by the caller, never propagated.
	ExecuteCode(name, code string) error
}
