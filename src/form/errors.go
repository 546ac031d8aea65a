package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/carlmjohnson/requests"
)

// Kind identifies which of the recognised failure paths a submission took.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidJSON
	KindHTTPStatus
	KindNoResponse
	KindRequest
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidJSON:
		return "invalid_json"
	case KindHTTPStatus:
		return "http_status"
	case KindNoResponse:
		return "no_response"
	case KindRequest:
		return "request"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

const (
	MsgInvalidJSON = "Invalid JSON input. Please check your input and try again."
	MsgNoResponse  = "No response received from the server. Please check if the server is running."
	MsgUnknown     = "An unexpected error occurred. Please try again."
)

// ErrBusy is returned when a submission is attempted while another is still in flight.
var ErrBusy = errors.New("a submission is already in progress")

// SubmitError is the failure half of a submission outcome.
type SubmitError struct {
	Kind       Kind
	Status     int
	StatusText string
	Err        error
}

func (e *SubmitError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("%s: %d %s", e.Kind, e.Status, e.StatusText)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user for this failure.
func (e *SubmitError) Message() string {
	switch e.Kind {
	case KindInvalidJSON:
		return MsgInvalidJSON
	case KindHTTPStatus:
		return fmt.Sprintf("Server error: %d %s", e.Status, e.StatusText)
	case KindNoResponse:
		return MsgNoResponse
	case KindRequest:
		if e.Err == nil {
			return MsgUnknown
		}
		return "Error: " + e.Err.Error()
	case KindMalformedResponse:
		if e.Err == nil {
			return "Malformed response from the server."
		}
		return "Malformed response from the server: " + e.Err.Error()
	default:
		return MsgUnknown
	}
}

// Classify maps any error produced while submitting onto a SubmitError.
func Classify(err error) *SubmitError {
	if err == nil {
		return nil
	}

	var se *SubmitError
	if errors.As(err, &se) {
		return se
	}

	switch {
	case errors.Is(err, requests.ErrURL), errors.Is(err, requests.ErrRequest):
		return &SubmitError{Kind: KindRequest, Err: underlying(err)}
	case errors.Is(err, requests.ErrTransport),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return &SubmitError{Kind: KindNoResponse, Err: err}
	case errors.Is(err, requests.ErrHandler) && connectionLost(err):
		// the connection dropped while the body was being read
		return &SubmitError{Kind: KindNoResponse, Err: err}
	default:
		return &SubmitError{Kind: KindUnknown, Err: err}
	}
}

func connectionLost(err error) bool {
	var netErr net.Error
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.As(err, &netErr)
}

// underlying strips the requests error kind from a joined error so the
// message shown to the user is the cause itself.
func underlying(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	for _, e := range joined.Unwrap() {
		var kind requests.ErrorKind
		if !errors.As(e, &kind) {
			return e
		}
	}
	return err
}

// statusError builds the non-2xx failure from a response, keeping the reason
// phrase the server sent.
func statusError(res *http.Response) *SubmitError {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return &SubmitError{Kind: KindHTTPStatus, Status: res.StatusCode, StatusText: text}
}
