package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/temporal-capi/capi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var defaultDifference = capi.FlatDifferenceSettings{}

// playOp is one playground operation: named inputs and a runner that
// renders the result as text.
type playOp struct {
	name   string
	inputs []string
	run    func(a *app, in []string) (string, error)
}

func playOps() []playOp {
	ops := make([]playOp, 0, len(kinds)+3)
	for _, k := range kinds {
		ops = append(ops, playOp{
			name:   "parse " + k,
			inputs: []string{k},
			run: func(a *app, in []string) (string, error) {
				v, err := a.parse(k, in[0])
				if err != nil {
					return "", err
				}
				defer a.release(v)
				var b strings.Builder
				err = a.describe(&b, v)
				return b.String(), err
			},
		})
	}
	ops = append(ops,
		playOp{
			name:   "add",
			inputs: []string{"kind", "value", "duration"},
			run: func(a *app, in []string) (string, error) {
				v, err := a.parse(in[0], in[1])
				if err != nil {
					return "", err
				}
				defer a.release(v)
				d, err := a.surface.DurationParse(in[2])
				if err != nil {
					return "", err
				}
				r, err := a.add(v, d, 0, false)
				if err != nil {
					return "", err
				}
				defer a.release(r)
				return a.format(r)
			},
		},
		playOp{
			name:   "until",
			inputs: []string{"kind", "from", "to"},
			run: func(a *app, in []string) (string, error) {
				x, err := a.parse(in[0], in[1])
				if err != nil {
					return "", err
				}
				defer a.release(x)
				y, err := a.parse(in[0], in[2])
				if err != nil {
					return "", err
				}
				defer a.release(y)
				d, err := a.difference(x, y, defaultDifference, false)
				if err != nil {
					return "", err
				}
				return a.surface.DurationFormat(d, a.toString)
			},
		},
		playOp{
			name:   "convert instant",
			inputs: []string{"instant", "time zone"},
			run: func(a *app, in []string) (string, error) {
				s := a.surface
				at, err := s.InstantParse(in[0])
				if err != nil {
					return "", err
				}
				tz, err := s.TimeZoneFromIdentifier(in[1])
				if err != nil {
					return "", err
				}
				defer s.TimeZoneRelease(tz)
				z, err := s.InstantToZonedDateTime(at, tz, a.calendar)
				if err != nil {
					return "", err
				}
				defer s.ZonedDateTimeRelease(z)
				var b strings.Builder
				err = a.describe(&b, value{kind: kindZoned, zoned: z})
				return b.String(), err
			},
		},
	)
	return ops
}

type playModel struct {
	err      error
	app      *app
	result   string
	ops      []playOp
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

type resultMsg struct {
	err    error
	result string
}

func newPlayModel(a *app) *playModel {
	return &playModel{app: a, ops: playOps(), state: stateSelectOp}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				m.state = stateInputArgs
				return m, textinput.Blink

			case stateInputArgs:
				return m, m.runOp

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *playModel) prepareInputs() {
	op := m.ops[m.selected]
	m.inputs = make([]textinput.Model, len(op.inputs))
	for i, name := range op.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholder(name)
		ti.Prompt = name + ": "
		ti.Width = 48
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func placeholder(input string) string {
	switch input {
	case kindInstant:
		return "2024-03-10T07:00:00Z"
	case kindDate:
		return "2024-02-29"
	case kindTime:
		return "13:45:30.5"
	case kindDateTime:
		return "2024-03-10T02:30"
	case kindZoned:
		return "2024-03-10T03:30-04:00[America/New_York]"
	case kindDuration:
		return "P1Y2M3DT4H"
	case "kind":
		return strings.Join(kinds, " | ")
	case "time zone":
		return "Europe/Berlin"
	}
	return ""
}

func (m *playModel) runOp() tea.Msg {
	op := m.ops[m.selected]
	in := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		in[i] = strings.TrimSpace(input.Value())
	}
	result, err := op.run(m.app, in)
	return resultMsg{result: result, err: err}
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Temporal Playground"))
	fmt.Fprintf(&b, " calendar %s, precision %s\n\n", m.app.cfg.Calendar, m.app.cfg.Precision)

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range m.ops {
			line := op.name + " " + hintStyle.Render("("+strings.Join(op.inputs, ", ")+")")
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + op.name))
				b.WriteString(" " + hintStyle.Render("("+strings.Join(op.inputs, ", ")+")"))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		fmt.Fprintf(&b, "%s\n\n", opStyle.Render(m.ops[m.selected].name))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateShowResult:
		fmt.Fprintf(&b, "Result of %s:\n\n", opStyle.Render(m.ops[m.selected].name))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func newPlayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Explore the operations in an interactive playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("play needs an interactive terminal")
			}
			p := tea.NewProgram(newPlayModel(a), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
