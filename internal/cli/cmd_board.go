// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/board"
)

type BoardParams struct {
	Sounds  []string `pos:"true" help:"Buttons as sound or sound=image."`
	Backend string   `short:"b" help:"Output backend: oto, beep, portaudio or null." default:"oto" alts:"oto,beep,portaudio,null"`
	Strict  bool     `short:"s" help:"Fail on clips the device cannot play as they are instead of resampling and remixing them."`
	Verbose bool     `short:"v" help:"Log debug output, including player state changes."`
	Cache   int      `short:"k" help:"Minutes to keep decoded clips in memory, 0 to decode on every press." default:"10"`
}

func BoardCmd() *cobra.Command {
	return boa.CmdT[BoardParams]{
		Use:         "board",
		Short:       "Interactive soundboard in the terminal",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *BoardParams, cmd *cobra.Command, args []string) {
			if err := runBoard(params); err != nil {
				fail("board", err)
			}
		},
	}.ToCobra()
}

func runBoard(params *BoardParams) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("board needs an interactive terminal")
	}

	dev, err := newDevice(params.Backend)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file when asked for.
	var logOut io.Writer = io.Discard
	if params.Verbose {
		f, err := os.CreateTemp("", "soundboard-*.log")
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	log := newLogger(logOut, params.Verbose)

	b, err := buildBoard(params.Sounds, soundboard.NewDecoder(nil), newPlayer(dev, params.Strict, params.Verbose, log),
		board.WithClipCache(time.Duration(params.Cache)*time.Minute))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = tea.NewProgram(newBoardModel(ctx, b, log), tea.WithAltScreen()).Run()
	return err
}

// buildBoard adds a button per argument. An argument is a sound path,
// optionally followed by =image.
func buildBoard(args []string, dec board.ClipDecoder, player board.ClipPlayer, opts ...board.Option) (*board.Board, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no sounds given")
	}

	b := board.New(dec, player, opts...)
	for _, arg := range args {
		sound, image, _ := strings.Cut(arg, "=")
		if _, err := b.Add("", sound, image); err != nil {
			return nil, err
		}
	}

	return b, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	buttonStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	selectedStyle = buttonStyle.BorderForeground(lipgloss.Color("62")).Bold(true)
	playingStyle  = buttonStyle.BorderForeground(lipgloss.Color("46")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const maxLabelWidth = 40

type boardKeys struct {
	Up, Down, Play, Pick, Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Pick, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = boardKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "down")),
	Play: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
	Pick: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "play nth")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type playedMsg struct {
	id  uuid.UUID
	err error
}

type boardModel struct {
	ctx     context.Context
	board   *board.Board
	log     *slog.Logger
	buttons []board.Button
	cursor  int
	playing map[uuid.UUID]int // queued or running presses per button
	status  string
	err     error
	help    help.Model
}

func newBoardModel(ctx context.Context, b *board.Board, log *slog.Logger) boardModel {
	return boardModel{
		ctx:     ctx,
		board:   b,
		log:     log,
		buttons: b.Buttons(),
		playing: map[uuid.UUID]int{},
		help:    help.New(),
	}
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) press(i int) (boardModel, tea.Cmd) {
	btn := m.buttons[i]
	m.cursor = i
	m.playing[btn.ID]++
	m.status = "playing " + btn.Label
	m.err = nil

	ctx, b, log := m.ctx, m.board, m.log
	return m, func() tea.Msg {
		log.Debug("press", "button", btn.Label, "sound", btn.Sound)
		return playedMsg{id: btn.ID, err: b.Press(ctx, btn.ID)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.buttons)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Play):
			if len(m.buttons) > 0 {
				return m.press(m.cursor)
			}
		case key.Matches(msg, keys.Pick):
			if i := int(msg.String()[0] - '1'); i < len(m.buttons) {
				return m.press(i)
			}
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case playedMsg:
		if m.playing[msg.id] > 1 {
			m.playing[msg.id]--
		} else {
			delete(m.playing, msg.id)
		}

		label := msg.id.String()
		if btn, ok := m.board.Button(msg.id); ok {
			label = btn.Label
		}

		if msg.err != nil {
			m.log.Error("playback failed", "button", label, "error", msg.err)
			m.err = msg.err
			m.status = ""
		} else {
			m.status = "played " + label
		}
	}

	return m, nil
}

func (m boardModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("soundboard"))
	sb.WriteString("\n\n")

	for i, btn := range m.buttons {
		text := fmt.Sprintf("%d  %s", i+1, runewidth.Truncate(btn.Label, maxLabelWidth, "…"))
		if btn.Image != "" {
			text += helpStyle.Render("  [" + btn.Image + "]")
		}

		style := buttonStyle
		switch {
		case m.playing[btn.ID] > 0:
			style = playingStyle
		case i == m.cursor:
			style = selectedStyle
		}
		sb.WriteString(style.Render(text))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		sb.WriteString(m.status)
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(keys))

	return sb.String()
}
