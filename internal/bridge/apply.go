package bridge

import (
	"os"

	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/errstore"
)

// apply is the dispatch table from message kind to host-state mutation. It
// runs synchronously on the thread that owns application state, applies each
// message exactly once, and never enqueues new asynchronous work.
func (b *Bridge) apply(msg domain.Message) {
	switch msg.Kind {
	case domain.MessageImage:
		path := msg.Image.FilePath
		if err := b.hostApp.LoadImage(path); err != nil {
			b.hostApp.ReportWarning("failed to load image: " + err.Error())
			return
		}
		if opts := msg.Options.Image; opts != nil && opts.RemoveFile {
			os.Remove(path)
		}

	case domain.MessageAudio:
		opts := msg.Options.Audio
		if opts == nil {
			b.hostApp.ReportWarning("transcript has no target")
			return
		}
		switch opts.Target {
		case domain.AudioTargetTextEditor:
			b.hostApp.WriteText(opts.TargetTextName, msg.Audio.Text)
		case domain.AudioTargetTextStrip:
			b.hostApp.AddTextStrip(opts.TargetChannel, opts.StripStart, opts.StripEnd, msg.Audio.Text)
		}

	case domain.MessageChat:
		// The chat log is already persisted by the handler; only focus the
		// topic.
		b.hostApp.FocusTopic(msg.Options.Chat.Topic)

	case domain.MessageCode:
		opts := msg.Options.Code
		code, err := b.code.Load(opts.CodeName)
		if err != nil {
			b.hostApp.ReportWarning("failed to read generated code: " + err.Error())
			return
		}
		if opts.ShowEditor {
			b.hostApp.ShowCode(opts.CodeName, code)
		}
		if opts.ExecuteImmediately {
			key := errstore.Key{Kind: string(domain.MessageCode), Name: opts.CodeName}
			if err := b.hostApp.ExecuteCode(opts.CodeName, code); err != nil {
				b.errors.Set(key, err.Error())
			} else {
				b.errors.Clear(key)
			}
		}

	case domain.MessageError:
		b.hostApp.ReportWarning("request failed: " + msg.Err.Error())

	case domain.MessageEndOfTransaction:
		// Control only; ledger bookkeeping happens at the poller.
	}
}
