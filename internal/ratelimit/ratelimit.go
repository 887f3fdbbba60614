// Package ratelimit provides per-source-address admission control for the
// lead intake endpoint. Implementations must treat check-and-update as a
// single atomic step per key so that two near-simultaneous requests from the
// same address are never both admitted inside one window.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request from the given key is admitted at `now`.
// A rejected request must not extend the key's window.
type Limiter interface {
	Admit(ctx context.Context, key string, now time.Time) bool
}
