package model

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failed run
type ErrorKind string

const (
	ErrInvalidURL            ErrorKind = "INVALID_URL"
	ErrTranscriptUnavailable ErrorKind = "TRANSCRIPT_UNAVAILABLE"
	ErrMetadataExtraction    ErrorKind = "METADATA_EXTRACTION_ERROR"
	ErrSummaryGeneration     ErrorKind = "SUMMARY_GENERATION_ERROR"
)

// HTTPStatus maps a kind to the status code used by the JSON API
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrInvalidURL:
		return http.StatusBadRequest
	case ErrTranscriptUnavailable:
		return http.StatusUnprocessableEntity
	case ErrMetadataExtraction, ErrSummaryGeneration:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error is a terminal failure of a run. Message is safe to show to the user;
// Err carries the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewInvalidURL(message string) *Error {
	return &Error{Kind: ErrInvalidURL, Message: message}
}

func NewTranscriptUnavailable(err error) *Error {
	return &Error{Kind: ErrTranscriptUnavailable, Message: "Could not get transcript", Err: err}
}

func NewMetadataExtraction(err error) *Error {
	return &Error{Kind: ErrMetadataExtraction, Message: "Error Extracting Video", Err: err}
}

func NewSummaryGeneration(err error) *Error {
	return &Error{Kind: ErrSummaryGeneration, Message: "Error generating summary", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
