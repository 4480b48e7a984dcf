package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/utxt/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	encStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Width(10)

	cpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	bytesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	maxShownBytes      = 32
	maxShownCodePoints = 12
)

func newInteractiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Shows typed text in every encoding as you type.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newInteractiveModel(a.v.GetString("text"))
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(a.stdin), tea.WithOutput(a.stdout))
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().String("text", "", "Initial text.")
	return cmd
}

type encodingRow struct {
	data     []byte
	detected transcoder.BOMResult
	enc      transcoder.Encoding
}

type interactiveModel struct {
	input   textinput.Model
	cps     []transcoder.CodePoint
	rows    []encodingRow
	withBOM bool
}

func newInteractiveModel(text string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type some text"
	ti.Prompt = "text: "
	ti.Width = 48
	ti.SetValue(text)
	ti.Focus()

	m := &interactiveModel{input: ti}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// refresh re-encodes the current input in every encoding.
func (m *interactiveModel) refresh() {
	m.cps = transcoder.ToCodePoints(transcoder.UTF8, []byte(m.input.Value()))
	m.rows = m.rows[:0]
	for _, enc := range transcoder.Encodings() {
		var data []byte
		if m.withBOM {
			data = transcoder.BOM(enc)
		}
		data = append(data, transcoder.FromCodePoints(enc, m.cps)...)
		m.rows = append(m.rows, encodingRow{
			enc:      enc,
			data:     data,
			detected: transcoder.Detect(data),
		})
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+b":
			m.withBOM = !m.withBOM
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("utxt"))
	b.WriteString(" ")
	if m.withBOM {
		b.WriteString("with byte order mark")
	} else {
		b.WriteString("without byte order mark")
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(cpStyle.Render(formatCodePoints(m.cps)))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(encStyle.Render(row.enc.String()))
		b.WriteString(bytesStyle.Render(formatBytes(row.data)))
		if row.detected.Encoding != row.enc && len(row.data) > 0 {
			b.WriteString(" ")
			b.WriteString(errorStyle.Render("reads back as " + row.detected.Encoding.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+b toggle BOM • esc quit"))
	return b.String()
}

func formatCodePoints(cps []transcoder.CodePoint) string {
	if len(cps) == 0 {
		return "no code points"
	}
	parts := make([]string, 0, min(len(cps), maxShownCodePoints)+1)
	for i, cp := range cps {
		if i == maxShownCodePoints {
			parts = append(parts, fmt.Sprintf("(+%d)", len(cps)-i))
			break
		}
		parts = append(parts, fmt.Sprintf("U+%04X", uint32(cp)))
	}
	return strings.Join(parts, " ")
}

func formatBytes(data []byte) string {
	if len(data) > maxShownBytes {
		return fmt.Sprintf("% X … (%d bytes)", data[:maxShownBytes], len(data))
	}
	return fmt.Sprintf("% X", data)
}
