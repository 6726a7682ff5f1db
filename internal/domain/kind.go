package domain

// RequestKind selects the handler for an outbound request.
type RequestKind string

const (
	RequestGenerateImage          RequestKind = "GENERATE_IMAGE"
	RequestEditImage              RequestKind = "EDIT_IMAGE"
	RequestGenerateVariationImage RequestKind = "GENERATE_VARIATION_IMAGE"
	RequestTranscribeAudio        RequestKind = "TRANSCRIBE_AUDIO"
	RequestChat                   RequestKind = "CHAT"
	RequestGenerateCode           RequestKind = "GENERATE_CODE"
	RequestEditCode               RequestKind = "EDIT_CODE"
	RequestGenerateCodeFromAudio  RequestKind = "GENERATE_CODE_FROM_AUDIO"
)

// MessageKind tags a result message drained by the poller. Every transaction
// emits zero or more domain messages followed by exactly one EndOfTransaction.
type MessageKind string

const (
	MessageImage            MessageKind = "IMAGE"
	MessageAudio            MessageKind = "AUDIO"
	MessageChat             MessageKind = "CHAT"
	MessageCode             MessageKind = "CODE"
	MessageError            MessageKind = "ERROR"
	MessageEndOfTransaction MessageKind = "END_OF_TRANSACTION"
)

// AudioTarget selects where a transcript is written by the host.
type AudioTarget string

const (
	AudioTargetTextEditor AudioTarget = "TEXT_EDITOR"
	AudioTargetTextStrip  AudioTarget = "TEXT_STRIP"
)
