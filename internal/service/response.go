package service

import (
	"encoding/json" // Envelope rendering
	"fmt"           // Panic wrapping

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Envelope status codes. They mirror HTTP codes but are not the transport
// status; the HTTP layer decides the final mapping.
const (
	StatusSuccess  = 200 // Operation succeeded
	StatusEmpty    = 204 // Nothing to list
	StatusConflict = 400 // Uniqueness or state conflict
	StatusNotFound = 404 // Entity missing
	StatusFailure  = 500 // Unexpected failure
)

// Response is the envelope every service operation returns
type Response struct {
	Data       any    `json:"data"`       // Payload, or the error on failure
	StatusCode int    `json:"statusCode"` // One of the Status constants
	Message    string `json:"message"`    // Human readable outcome
}

// MarshalJSON renders an error held in Data as {"error": "..."}
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response // Drop the method to avoid recursion
	if err, ok := r.Data.(error); ok {
		r.Data = map[string]string{"error": err.Error()}
	}
	return json.Marshal(plain(r))
}

// OK reports whether the envelope carries a successful result
func (r Response) OK() bool { return r.StatusCode == StatusSuccess }

// success wraps a payload in a 200 envelope
func success(data any, msg string) Response {
	return Response{Data: data, StatusCode: StatusSuccess, Message: msg}
}

// failure logs an expected outcome and returns an envelope without data
func failure(log logrus.FieldLogger, code int, msg string) Response {
	log.Warn(msg) // Expected, not an error
	return Response{StatusCode: code, Message: msg}
}

// fatal logs an unexpected error and returns it in a 500 envelope
func fatal(log logrus.FieldLogger, err error, msg string) Response {
	log.WithError(err).Error(msg)
	return Response{Data: err, StatusCode: StatusFailure, Message: msg}
}

// recoverFailure turns a panic in an operation into a 500 envelope
func recoverFailure(log logrus.FieldLogger, resp *Response, msg string) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r) // Non-error panic value
		}
		*resp = fatal(log, err, msg)
	}
}

// operatorOr returns the named operator or fallback when none is given
func operatorOr(name *string, fallback string) string {
	if name != nil && *name != "" {
		return *name
	}
	return fallback
}
