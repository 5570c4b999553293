// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer for catalog mutation events.
package queue

// Movie event actions.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
    ActionDeleted = "deleted"
)

// MovieEvent is published after a catalog mutation commits. It carries
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type MovieEvent struct {
    Action     string `json:"action"` // created | updated | deleted
    MovieID    uint64 `json:"movie_id"`
    Title      string `json:"title,omitempty"` // empty for deletes
    UserID     uint64 `json:"user_id"`         // principal that performed the mutation
    OccurredAt string `json:"occurred_at"`     // RFC 3339 UTC
}
