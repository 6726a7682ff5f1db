package config

import "time"

const (
	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Outbound request channel capacity
	RequestQueueCapacity = 256

	// Bounded wait for the worker to exit on shutdown
	ShutdownTimeout = 5 * time.Second

	// Transaction titles are truncated to this length for status display
	MaxTitleLen = 32

	// Code names derived from a transcript are truncated to this length
	MaxCodeNameLen = 64

	// Transactions listed in a status snapshot
	StatusSnapshotLimit = 5

	// Default sampling temperature for transcription
	DefaultAudioTemperature = 0.0
)

// Prices per 1M tokens (USD) used by the usage tracker. Chat and code requests
// share chat completion pricing; transcription is billed per audio minute by
// the provider and is not tracked here.
const (
	ChatPromptPricePer1M     = 30.0
	ChatCompletionPricePer1M = 60.0
)
