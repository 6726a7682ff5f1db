package domain

import "errors"

var (
	ErrBridgeClosed   = errors.New("bridge is closed")
	ErrQueueFull      = errors.New("request queue full")
	ErrTopicNotFound  = errors.New("topic not found")
	ErrPartOutOfRange = errors.New("part index out of range")
	ErrCodeNotFound   = errors.New("code not found")
	ErrNoCodeBlock    = errors.New("response must contain exactly one code block")
	ErrUnknownKind    = errors.New("unknown request kind")
)
