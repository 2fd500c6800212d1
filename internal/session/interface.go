package session

import "context"

// Service creates and tracks transcript sessions. Each session owns its own
// chunk set and index; they are replaced together, never patched.
type Service interface {
	// Initialize chunks and indexes transcript under a new session id.
	Initialize(ctx context.Context, transcript string) (*Session, error)
	// Resubmit replaces the transcript of an existing session. The old index
	// and question history are discarded.
	Resubmit(ctx context.Context, id, transcript string) (*Session, error)
	Get(id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
