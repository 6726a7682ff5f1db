package domain

import "github.com/google/uuid"

// Request is one unit of work for the dispatch worker. Exactly one payload
// field matching Kind is set. A request is owned by whichever queue holds it
// and is handed off by value.
type Request struct {
	APIKey        string
	TransactionID uuid.UUID // uuid.Nil for synchronous calls
	Kind          RequestKind

	Image     *ImagePayload
	ImageEdit *ImageEditPayload
	Audio     *AudioPayload
	Chat      *ChatPayload
	Code      *CodePayload

	Options Options
}

// ImagePayload backs GENERATE_IMAGE.
type ImagePayload struct {
	Prompt string
	Count  int
	Size   string
}

// ImageEditPayload backs EDIT_IMAGE and GENERATE_VARIATION_IMAGE. The mask
// path is empty for variations. Both input files are temporary copies removed
// after upload.
type ImageEditPayload struct {
	Prompt        string
	Count         int
	Size          string
	BaseImagePath string
	MaskImagePath string
}

// AudioPayload backs TRANSCRIBE_AUDIO.
type AudioPayload struct {
	FilePath    string
	Model       string
	Prompt      string
	Temperature float64
	Language    string
}

// ChatPayload backs CHAT. Conditions are the visible system strings entered
// alongside the new user turn.
type ChatPayload struct {
	Model      string
	UserText   string
	Conditions []string
}

// CodePayload backs GENERATE_CODE, EDIT_CODE and GENERATE_CODE_FROM_AUDIO.
// The audio fields are set only for the audio composition kind.
type CodePayload struct {
	Model      string
	Prompt     string
	Conditions []string

	AudioFilePath string
	AudioModel    string
	AudioLanguage string
}

// Options carry kind-specific side-channel configuration. They are echoed on
// every message of the transaction so the poller can apply side effects
// without re-deriving them.
type Options struct {
	Image *ImageOptions
	Audio *AudioOptions
	Chat  *ChatOptions
	Code  *CodeOptions
}

type ImageOptions struct {
	ImageName     string // empty: derive from the download URL
	BaseImageName string // edit/variation output naming
	RemoveFile    bool   // delete the backing file once the host loaded it
}

type AudioOptions struct {
	Target         AudioTarget
	TargetTextName string
	TargetChannel  int
	StripStart     int
	StripEnd       int
}

type ChatOptions struct {
	Topic            string
	NewTopic         bool
	HiddenConditions []string
}

type CodeOptions struct {
	CodeName           string
	ShowEditor         bool
	ExecuteImmediately bool
}
