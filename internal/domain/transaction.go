package domain

import "github.com/google/uuid"

// Transaction describes one in-flight asynchronous request, from enqueue to
// its END_OF_TRANSACTION message.
type Transaction struct {
	ID    uuid.UUID
	Kind  RequestKind
	Title string
}
