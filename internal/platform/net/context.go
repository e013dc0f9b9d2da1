// Package net carries the request id between chi, the logger and the response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

// WithRequest stores id where both chimw.GetReqID and logger.C find it
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return logger.WithRequest(context.WithValue(ctx, chimw.RequestIDKey, id), id)
}

// RequestID is the id chimw.RequestID assigned, or empty
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
