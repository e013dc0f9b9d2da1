// Package http holds the chi backed router seam, the JSON envelope and the API server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	pnet "github.com/kweimann/poe-stash-filter/internal/platform/net"
	"github.com/kweimann/poe-stash-filter/internal/platform/net/http/bind"
)

// Envelope is the body of every API response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce. An error Body selects the error envelope
type Response struct {
	Status int
	Body   any
}

// OK is a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error is a response whose status comes from the error code
func Error(err error) Response { return Response{Body: err} }

// JSON writes v with status as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the error envelope for err
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := envelopeFor(r, Error(err))
	JSON(w, status, env)
}

func envelopeFor(r *stdhttp.Request, resp Response) (int, Envelope) {
	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status := perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		return status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			Code:       wire.Code,
			Error:      wire.Message,
			Field:      wire.Field,
			RequestID:  reqID,
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       resp.Body,
	}
}

// Handle adapts a Response returning func to a Handler
func Handle(fn func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		status, env := envelopeFor(r, fn(r))
		JSON(w, status, env)
	}
}

// JSONHandler binds and validates a T from the body before calling fn
func JSONHandler[T any](fn func(*stdhttp.Request, T) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn for requests without a body
func JSONHandlerNoBody(fn func(*stdhttp.Request) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response { return wrap(fn(r)) })
}

// wrap turns a handler result into a Response; a returned Response passes through
func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
