package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/escape-room/internal/command"
	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/i18n"
	"github.com/tatianab/escape-room/internal/inventory"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/scene"
	"github.com/tatianab/escape-room/internal/session"
)

type sessionState int

const (
	stateTitle sessionState = iota
	statePlaying
	stateOver
	stateError
)

// flashSeconds is how long a fresh inventory item stays highlighted.
const flashSeconds = 3

type model struct {
	state     sessionState
	newEngine engine.Factory
	engine    *engine.Engine
	hud       *hud
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	banner    string
	width     int
	height    int
	// gen identifies the playthrough so ticks from a finished one are dropped.
	gen int
}

// hud is filled in by inventory listeners, which outlive any single copy
// of the model.
type hud struct {
	items []string
	flash int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	deniedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787"))
	newStyle    = itemStyle.Bold(true).Reverse(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
)

var glyphs = map[models.Kind]rune{
	models.KindDoor:     'D',
	models.KindDrawer:   'd',
	models.KindBook:     'b',
	models.KindSafe:     'S',
	models.KindPainting: 'p',
	models.KindPlant:    'f',
}

func NewModel(newEngine engine.Factory) model {
	ti := textinput.New()
	ti.Placeholder = "Enter to use what you face, or type a command..."
	ti.CharLimit = 80
	ti.Width = 40

	return model{
		state:     stateTitle,
		newEngine: newEngine,
		hud:       &hud{},
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type tickMsg struct {
	gen int
}

type lookMsg struct {
	gen  int
	text string
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

		switch m.state {
		case stateTitle, stateOver:
			if msg.Type == tea.KeyEnter {
				return m.begin()
			}
			return m, nil

		case statePlaying:
			if next, cmd, ok := m.handleKey(msg); ok {
				return next, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.65)
		m.viewport.Height = msg.Height - 8
		m.viewport.SetContent(m.renderLog())

	case tickMsg:
		// A tick is only re-issued while the playthrough it belongs to is
		// running; this is what stops the clock on win, loss or restart.
		if msg.gen != m.gen || m.state != statePlaying {
			return m, nil
		}
		if m.hud.flash > 0 {
			m.hud.flash--
		}
		if text, expired := m.engine.Tick(); expired {
			m.appendLog(deniedStyle.Render(text))
			return m.finish(), nil
		}
		return m, tick(m.gen)

	case lookMsg:
		if msg.gen == m.gen {
			m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.text))
		}
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey consumes the movement keys and submitted lines. It reports false
// for keys that belong to the text input; left and right edit a line that is
// being typed.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.textInput.Value() != "" && (msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight) {
		return m, nil, false
	}
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftUp:
		m.engine.Move(scene.Forward, msg.Type == tea.KeyShiftUp)
	case tea.KeyDown, tea.KeyShiftDown:
		m.engine.Move(scene.Back, msg.Type == tea.KeyShiftDown)
	case tea.KeyLeft:
		m.engine.Turn(command.TurnStep)
	case tea.KeyRight:
		m.engine.Turn(-command.TurnStep)
	case tea.KeyEnter:
		line := m.textInput.Value()
		m.textInput.Reset()
		next, cmd := m.submit(line)
		return next, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m model) submit(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	if line != "" {
		m.appendLog(userStyle.Width(m.logWidth()).Render("> " + line))
	}

	cmd, err := command.Parse(line)
	if err != nil {
		m.banner = deniedStyle.Render(err.Error())
		return m, nil
	}

	cat := m.engine.Catalog()
	switch cmd.Verb {
	case command.Click:
		out, err := m.engine.Click()
		if err != nil {
			return m.fail(err), nil
		}
		if out.Result == engine.ResultNone {
			m.banner = cat.Get(i18n.MsgNothingThere)
			return m, nil
		}
		m.outcome(out)
	case command.Use:
		out, err := m.engine.Use(cmd.Object)
		if err != nil {
			return m.fail(err), nil
		}
		m.outcome(out)
	case command.Move:
		m.engine.Move(cmd.Direction, cmd.Run)
	case command.Turn:
		m.engine.Turn(cmd.Degrees)
	case command.Look:
		v := m.engine.Snapshot()
		eng, gen := m.engine, m.gen
		m.banner = "..."
		return m, func() tea.Msg {
			return lookMsg{gen: gen, text: eng.Narrate(context.Background(), v)}
		}
	case command.Inventory:
		m.banner = m.inventoryLine()
	case command.Status:
		s := m.engine.Session()
		m.banner = fmt.Sprintf("%s %s | %s %d", cat.Get(i18n.MsgTimeLeft), s.Clock(), cat.Get(i18n.MsgPuzzlesSolved), s.PuzzlesSolved())
	case command.Wait:
		// The clock runs on its own here.
	case command.Help:
		m.appendLog(helpStyle.Render(command.HelpText))
	case command.Restart:
		return m.begin()
	case command.Quit:
		return m, tea.Quit
	}

	if m.engine.Session().Status().Terminal() {
		return m.finish(), nil
	}
	return m, nil
}

// begin starts a fresh playthrough and its clock.
func (m model) begin() (tea.Model, tea.Cmd) {
	eng, err := m.newEngine()
	if err != nil {
		return m.fail(err), nil
	}
	m.engine = eng
	m.gen++
	m.hud = &hud{}
	h := m.hud
	eng.Inventory().OnChange(func(s *inventory.Store) {
		h.items = s.Items()
		h.flash = flashSeconds
	})

	m.state = statePlaying
	m.err = nil
	m.gameLog = ""
	m.banner = ""
	m.textInput.Reset()
	m.textInput.Focus()
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.logWidth(), max(m.height-8, 5))
	}

	room := eng.Room()
	m.appendLog(gameStyle.Bold(true).Render(room.Title))
	m.appendLog(gameStyle.Width(m.logWidth()).Render(room.Description))
	m.appendLog(gameStyle.Width(m.logWidth()).Render(eng.Start()))
	return m, tick(m.gen)
}

func (m model) finish() model {
	m.state = stateOver
	m.textInput.Blur()
	s := m.engine.Session()
	summary := fmt.Sprintf("%s | %s %d | %s %s / %s", s.Status(),
		m.engine.Catalog().Get(i18n.MsgPuzzlesSolved), s.PuzzlesSolved(),
		m.engine.Catalog().Get(i18n.MsgTimeLeft), s.Clock(), session.FormatClock(s.TimeLimit()))
	if s.Status() == session.Won {
		m.banner = wonStyle.Render(summary)
	} else {
		m.banner = deniedStyle.Render(summary)
	}
	return m
}

func (m model) fail(err error) model {
	m.err = err
	m.state = stateError
	return m
}

func (m *model) outcome(out engine.Outcome) {
	if out.Message == "" {
		return
	}
	text := out.Message
	switch out.Result {
	case engine.ResultRejected:
		text = deniedStyle.Render(text)
	case engine.ResultWon:
		text = wonStyle.Render(text)
	}
	m.banner = text
	m.appendLog(gameStyle.Width(m.logWidth()).Render(text))
}

func (m *model) appendLog(s string) {
	if m.gameLog != "" {
		m.gameLog += "\n\n"
	}
	m.gameLog += s
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 60
	}
	return int(float64(m.width) * 0.65)
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateTitle:
		s = fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("ESCAPE ROOM"),
			"Find a way out before the clock runs out.",
			helpStyle.Render("Press Enter to start, Esc to quit."),
		)

	case statePlaying, stateOver:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		help := helpStyle.Render("↑/↓ move (shift runs), ←/→ turn (edit the line while typing), Enter uses what you face. Type 'help' for commands.")
		bottom := "\n" + m.textInput.View()
		if m.state == stateOver {
			help = helpStyle.Render("Press Enter to play again, Esc to quit.")
			bottom = ""
		}

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+bannerStyle.Render(m.banner),
			bottom,
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	if m.engine == nil {
		return ""
	}
	cat := m.engine.Catalog()
	s := m.engine.Session()
	p := m.engine.Pose()

	clock := s.Clock()
	if s.TimeLeft() < 60 {
		clock = urgentStyle.Render(clock)
	}
	timer := titleStyle.Render(strings.ToUpper(cat.Get(i18n.MsgTimeLeft))) + "\n" + clock + "\n\n"
	puzzles := titleStyle.Render(strings.ToUpper(cat.Get(i18n.MsgPuzzlesSolved))) + "\n" + fmt.Sprint(s.PuzzlesSolved()) + "\n\n"

	facing := cat.Get(i18n.MsgNothing)
	if h, ok := m.engine.Target(); ok {
		facing = m.engine.Name(h)
	}
	view := titleStyle.Render(strings.ToUpper(cat.Get(i18n.MsgFacing))) + "\n" +
		fmt.Sprintf("%s (%s)\n\n", facing, p.Compass())

	invTitle := titleStyle.Render(strings.ToUpper(cat.Get(i18n.MsgInventory))) + "\n"
	inv := ""
	if len(m.hud.items) == 0 {
		inv = "(" + cat.Get(i18n.MsgInventoryEmpty) + ")\n"
	}
	for i, item := range m.hud.items {
		style := itemStyle
		if m.hud.flash > 0 && i == len(m.hud.items)-1 {
			style = newStyle
		}
		inv += "- " + style.Render(item) + "\n"
	}

	var markers []scene.Marker
	for _, obj := range m.engine.Objects() {
		g := glyphs[obj.Kind]
		if obj.Resolved() {
			g = '+'
		}
		markers = append(markers, scene.Marker{At: obj.Footprint.Center, Glyph: g})
	}
	mapView := "\n" + strings.Join(scene.Minimap(p, 19, 9, markers), "\n")

	content := timer + puzzles + view + invTitle + inv + mapView

	stateWidth := int(float64(m.width) * 0.33)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) inventoryLine() string {
	cat := m.engine.Catalog()
	items := m.engine.Inventory().Items()
	if len(items) == 0 {
		return cat.Get(i18n.MsgInventory) + ": " + cat.Get(i18n.MsgInventoryEmpty)
	}
	return cat.Get(i18n.MsgInventory) + ": " + strings.Join(items, ", ")
}

func (m model) renderLog() string {
	return m.gameLog
}

// Run shows the title screen and plays until the player quits.
func Run(newEngine engine.Factory) error {
	p := tea.NewProgram(NewModel(newEngine), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
