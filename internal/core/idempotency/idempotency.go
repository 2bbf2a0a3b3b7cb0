// Package idempotency defines the replay store behind X-Idempotency-Key.
package idempotency

import (
	"context"
	"net/http"
)

// Status of a stored key.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
)

// Request identifies what a key was first used for. A key reused with a
// different Request is rejected.
type Request struct {
	Key         string `json:"key"`
	UserID      string `json:"userId"`
	Operation   string `json:"operation"`
	RequestHash string `json:"requestHash"`
}

// Matches reports whether o is the same request as r.
func (r Request) Matches(o Request) bool {
	return r.UserID == o.UserID && r.Operation == o.Operation && r.RequestHash == o.RequestHash
}

// Replay is a stored HTTP response.
type Replay struct {
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Normalize fills defaults for records stored without status or content type.
func (r *Replay) Normalize() *Replay {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	if r.ContentType == "" {
		r.ContentType = "application/json"
	}
	return r
}

// Store persists keys and their responses.
//
// AcquireKey returns:
//   - (nil, nil) when the key was acquired by this request
//   - (replay, nil) when the key already completed
//   - (nil, err) with an IDEMPOTENCY_CONFLICT AppError when the key is in
//     progress (409) or was used for a different request (422)
type Store interface {
	AcquireKey(ctx context.Context, req Request) (*Replay, error)
	CompleteKey(ctx context.Context, key string, replay Replay) error
	// ReleaseKey forgets a pending key so the client may retry.
	ReleaseKey(ctx context.Context, key string) error
}
