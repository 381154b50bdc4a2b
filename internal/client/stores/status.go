package stores

import (
	"context"

	"github.com/dmitrijs2005/cycleshop/internal/client/client"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

// Status is the request status a store exposes to views.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// tracker is the status bookkeeping shared by every store. Callers hold the
// owning store's lock.
type tracker struct {
	status  Status
	lastErr string
}

func (t *tracker) begin() {
	t.status = StatusLoading
}

func (t *tracker) succeed() {
	t.status = StatusSucceeded
	t.lastErr = ""
}

func (t *tracker) fail(err error) {
	t.status = StatusFailed
	t.lastErr = client.Message(err)
}

func (t *tracker) reset() {
	t.status = StatusIdle
	t.lastErr = ""
}

func logFailure(ctx context.Context, log logging.Logger, op string, err error) {
	log.Warn(ctx, "store operation failed",
		"op", op,
		"status", client.StatusOf(err),
		"origin", client.OriginOf(err).String(),
		"error", err,
	)
}
