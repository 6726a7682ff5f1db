package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// Terminal is a reference Host for the demo binary. A single goroutine owns
// the task queue and stands in for the 3D application's main loop; timers
// post their callbacks onto it, so everything the bridge applies runs on one
// goroutine, like the real host.
type Terminal struct {
	tasks  chan func()
	nextID atomic.Int64
	timers chan timerCtl
}

type terminalTimer struct {
	id   int64
	stop chan struct{}
}

type timerCtl struct {
	add    *terminalTimer
	remove int64
}

func NewTerminal() *Terminal {
	return &Terminal{
		tasks:  make(chan func(), 64),
		timers: make(chan timerCtl, 16),
	}
}

// Do posts fn onto the main loop.
func (t *Terminal) Do(fn func()) {
	t.tasks <- fn
}

// Run executes posted tasks until ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) {
	active := make(map[int64]*terminalTimer)
	defer func() {
		for _, tm := range active {
			close(tm.stop)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ctl := <-t.timers:
			if ctl.add != nil {
				active[ctl.add.id] = ctl.add
			} else if tm, ok := active[ctl.remove]; ok {
				close(tm.stop)
				delete(active, ctl.remove)
			}
		case fn := <-t.tasks:
			fn()
		}
	}
}

func (t *Terminal) AddTimer(interval time.Duration, fn func()) TimerHandle {
	tm := &terminalTimer{id: t.nextID.Add(1), stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-tm.stop:
				return
			case <-ticker.C:
				t.tasks <- fn
			}
		}
	}()
	t.timers <- timerCtl{add: tm}
	return tm.id
}

func (t *Terminal) RemoveTimer(handle TimerHandle) {
	id, ok := handle.(int64)
	if !ok {
		return
	}
	t.timers <- timerCtl{remove: id}
}

func (t *Terminal) ReportWarning(msg string) {
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}

func (t *Terminal) LoadImage(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	slog.Info("image saved", "path", path)
	return nil
}

func (t *Terminal) WriteText(name, text string) {
	fmt.Printf("--- %s ---\n%s\n", name, text)
}

func (t *Terminal) AddTextStrip(channel, start, end int, text string) {
	fmt.Printf("[strip ch=%d %d..%d] %s\n", channel, start, end, text)
}

func (t *Terminal) FocusTopic(topic string) {
	slog.Info("topic active", "topic", topic)
}

func (t *Terminal) ShowCode(name, code string) {
	fmt.Printf("--- %s.py ---\n%s\n", name, code)
}

func (t *Terminal) ExecuteCode(name, code string) error {
	// The terminal host has no embedded interpreter; show the code instead.
	t.ShowCode(name, code)
	return nil
}
