package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seraph.si/v2/bfhl-form/src/form"
)

var (
	primary    = lipgloss.Color("#6C8EEF")
	secondary  = lipgloss.Color("#9ECBFF")
	accent     = lipgloss.Color("#FFD787")
	successCol = lipgloss.Color("#A6E3A1")
	errorCol   = lipgloss.Color("#F38BA8")
	textCol    = lipgloss.Color("#CDD6F4")
	muted      = lipgloss.Color("#7F849C")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(primary)
	subtitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	normalStyle    = lipgloss.NewStyle().Foreground(textCol)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted).Italic(true)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	successStyle   = lipgloss.NewStyle().Foreground(successCol)
	errorStyle     = lipgloss.NewStyle().Foreground(errorCol)
	infoStyle      = lipgloss.NewStyle().Foreground(secondary)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1)
)

const maxInputWidth = 80

func InitialFormModel(ctx context.Context, client *form.Client) FormModel {
	input := textarea.New()
	input.Placeholder = "Enter JSON input"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetWidth(60)
	input.SetHeight(6)
	input.Focus()

	return FormModel{
		Input:  input,
		ctx:    ctx,
		client: client,
	}
}

// Run starts the terminal form and blocks until the user quits.
func Run(ctx context.Context, client *form.Client, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(InitialFormModel(ctx, client), opts...).Run()
	return err
}

func (m FormModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 4
		if w > maxInputWidth {
			w = maxInputWidth
		}
		if w > 0 {
			m.Input.SetWidth(w)
		}
		return m, nil

	case SubmittedMsg:
		m.State.Apply(msg.Result, msg.Err)
		if m.State.Result == nil {
			m.focusInput()
		}
		return m, nil

	case ClipboardMsg:
		m.Copied = msg.Success
		m.ClipboardErr = ""
		if msg.Err != nil {
			m.ClipboardErr = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		case "ctrl+y":
			if m.State.Result == nil {
				return m, nil
			}
			return m, CopyToClipboard(form.RenderText(m.State.Result, m.State.Selected))
		case "tab", "shift+tab":
			if m.Focus == focusInput && m.State.Result != nil {
				m.Focus = focusFields
				m.Input.Blur()
				return m, nil
			}
			m.focusInput()
			return m, nil
		}

		if m.Focus == focusFields {
			switch msg.String() {
			case "up", "k":
				if m.Cursor > 0 {
					m.Cursor--
				}
			case "down", "j":
				if m.Cursor < len(form.Fields)-1 {
					m.Cursor++
				}
			case " ", "enter":
				m.State.Selected = m.State.Selected.Toggle(form.Fields[m.Cursor])
				m.Copied = false
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// submit ignores the key while a request is outstanding.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	if m.State.Pending {
		return m, nil
	}
	m.State.Input = m.Input.Value()
	m.Copied, m.ClipboardErr = false, ""

	req, err := m.State.Begin()
	m.focusInput()
	if err != nil {
		return m, nil
	}
	return m, sendCmd(m.ctx, m.client, req)
}

func sendCmd(ctx context.Context, client *form.Client, req form.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Send(ctx, req)
		return SubmittedMsg{Result: res, Err: err}
	}
}

func (m *FormModel) focusInput() {
	m.Focus = focusInput
	m.Input.Focus()
}

func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BFHL Form") + "\n")
	b.WriteString(mutedStyle.Render("POST "+m.client.Endpoint()) + "\n\n")

	label := normalStyle.Render("  JSON input")
	if m.Focus == focusInput {
		label = highlightStyle.Render("› JSON input")
	}
	b.WriteString(label + "\n")
	b.WriteString(m.Input.View() + "\n\n")

	if m.State.Pending {
		b.WriteString(infoStyle.Render("Submitting…") + "\n\n")
	}
	if msg := m.State.ErrorMessage(); msg != "" {
		b.WriteString(errorStyle.Render(msg) + "\n\n")
	}

	if m.State.Result != nil {
		b.WriteString(m.selectorView() + "\n")
		if blocks := m.State.Blocks(); len(blocks) > 0 {
			b.WriteString(panelStyle.Render(blocksView(blocks)) + "\n\n")
		}
	}

	if m.Copied {
		b.WriteString(successStyle.Render("Result copied to clipboard") + "\n\n")
	} else if m.ClipboardErr != "" {
		b.WriteString(errorStyle.Render("Copy error: "+m.ClipboardErr) + "\n\n")
	}

	help := "ctrl+s submit • esc quit"
	if m.State.Result != nil {
		help = "ctrl+s submit • tab switch focus • space toggle field • ctrl+y copy • esc quit"
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

func (m FormModel) selectorView() string {
	var b strings.Builder
	title := "Select fields to display"
	if m.Focus == focusFields {
		b.WriteString(highlightStyle.Render("› "+title) + "\n")
	} else {
		b.WriteString(subtitleStyle.Render("  "+title) + "\n")
	}

	for i, f := range form.Fields {
		check := "[ ]"
		if m.State.Selected.Has(f) {
			check = "[x]"
		}
		prefix := "    "
		style := normalStyle
		if m.Focus == focusFields && m.Cursor == i {
			prefix = "  › "
			style = highlightStyle
		}
		b.WriteString(style.Render(prefix+check+" "+f.Label()) + "\n")
	}
	return b.String()
}

func blocksView(blocks []form.Block) string {
	lines := make([]string, len(blocks))
	for i, blk := range blocks {
		lines[i] = subtitleStyle.Render(blk.Label+":") + " " + normalStyle.Render(blk.Text)
	}
	return strings.Join(lines, "\n")
}
