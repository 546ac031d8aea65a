package form

import (
	"bytes"
	"encoding/json"
)

// Request is the compacted JSON body of a single submission.
type Request []byte

// ParseRequest validates input as one JSON value and compacts it. The value
// is forwarded as-is, with key order and number literals preserved. Numbers
// are only checked for syntax, so 1e400 is accepted.
func ParseRequest(input string) (Request, error) {
	data := []byte(input)
	if !json.Valid(data) {
		return nil, &SubmitError{Kind: KindInvalidJSON}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, &SubmitError{Kind: KindInvalidJSON, Err: err}
	}
	return Request(buf.Bytes()), nil
}

// State is the view state of one form session. Result and Err are never both
// set.
type State struct {
	Input    string
	Result   *Result
	Err      *SubmitError
	Selected Selection
	Pending  bool
}

// ErrorMessage is the text to show for the last failure, or "".
func (s *State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message()
}

// Begin starts a submission of the current input. Result and error are
// cleared first. On a parse failure the error is recorded and returned and
// nothing is pending.
func (s *State) Begin() (Request, error) {
	if s.Pending {
		return nil, ErrBusy
	}
	s.Result, s.Err = nil, nil

	req, err := ParseRequest(s.Input)
	if err != nil {
		s.Err = Classify(err)
		return nil, s.Err
	}
	s.Pending = true
	return req, nil
}

// Apply records the outcome of the submission started by Begin.
func (s *State) Apply(res *Result, err error) {
	s.Pending = false
	switch {
	case err != nil:
		s.Result, s.Err = nil, Classify(err)
	case res == nil:
		s.Result, s.Err = nil, &SubmitError{Kind: KindUnknown}
	default:
		s.Result, s.Err = res, nil
	}
}

// Blocks renders the current result with the current selection.
func (s *State) Blocks() []Block {
	return Render(s.Result, s.Selected)
}
