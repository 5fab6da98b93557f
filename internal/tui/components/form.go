package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvidela/duet/internal/tui/styles"
)

// FieldSpec describes one input in a form
type FieldSpec struct {
	Label       string
	Placeholder string
	CharLimit   int
}

// Form is a small modal with a vertical stack of text inputs. Tab moves
// between fields, enter on the last field submits, esc dismisses.
type Form struct {
	visible bool
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
}

// NewForm creates an empty, hidden form
func NewForm() Form {
	return Form{}
}

// Show displays the form with the given fields, focused on the first
func (f *Form) Show(title string, fields []FieldSpec) {
	f.visible = true
	f.title = title
	f.focus = 0
	f.labels = make([]string, len(fields))
	f.inputs = make([]textinput.Model, len(fields))

	for i, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = spec.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 120
		}
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle

		f.labels[i] = spec.Label
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// Hide dismisses the form
func (f *Form) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f Form) IsVisible() bool {
	return f.visible
}

// Values returns the trimmed contents of every field, in field order
func (f Form) Values() []string {
	values := make([]string, len(f.inputs))
	for i := range f.inputs {
		values[i] = strings.TrimSpace(f.inputs[i].Value())
	}
	return values
}

// Update handles input events, returning (form, cmd, submitted)
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return f, nil, true
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// View renders the form modal
func (f Form) View() string {
	if !f.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(styles.AccentStyle.Render("> " + label))
		} else {
			b.WriteString(styles.SubtitleStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter submit · tab next · esc cancel"))

	return styles.ModalStyle.Render(b.String())
}
