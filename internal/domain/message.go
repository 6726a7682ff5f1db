package domain

import "github.com/google/uuid"

// Message is one result ferried from the worker to the main-thread poller.
// CHAT and CODE messages carry no payload: their artifacts are already on
// disk by the time the message is emitted.
type Message struct {
	TransactionID uuid.UUID
	Kind          MessageKind

	Image *ImageResult
	Audio *AudioResult
	Err   error // set for MessageError

	Options Options
}

// ImageResult points at a saved image file, readable by the time the message
// is drained.
type ImageResult struct {
	FilePath string
}

// AudioResult holds a transcript.
type AudioResult struct {
	Text string
}
