package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"

	"seraph.si/v2/bfhl-form/src/form"
)

type focus int

const (
	focusInput focus = iota
	focusFields
)

// SubmittedMsg carries the outcome of a submission back into Update.
type SubmittedMsg struct {
	Result *form.Result
	Err    error
}

type ClipboardMsg struct {
	Success bool
	Err     error
}

// FormModel is the whole terminal form: JSON input, field selector and
// rendered result, backed by a form.State.
type FormModel struct {
	State        form.State
	Input        textarea.Model
	Focus        focus
	Cursor       int
	Copied       bool
	ClipboardErr string

	ctx    context.Context
	client *form.Client
	width  int
}
