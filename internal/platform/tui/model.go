package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/go2048/internal/game"
	"github.com/vovakirdan/go2048/internal/registry"
)

// PlayConfig configures the board screen.
type PlayConfig struct {
	Solver   registry.Solver // nil = the player drives with the keyboard
	TickRate int             // solver moves per second
	Title    string          // shown above the board; defaults to "2048"
}

// PlayModel is the Bubble Tea model for playing or watching a game.
// It only reads the board; every change goes through the Game's operations.
type PlayModel struct {
	game     *game.Game
	solver   registry.Solver
	tickRate int
	title    string
	keys     PlayKeyMap
	help     help.Model
	width    int
	height   int

	lastAction game.Action
	lastReward int
	moved      bool // lastAction/lastReward describe the current position
	paused     bool
	ticking    bool
	quitting   bool
	err        error
}

// NewPlayModel creates a board screen for g.
func NewPlayModel(g *game.Game, cfg PlayConfig) PlayModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10
	}
	if cfg.Title == "" {
		cfg.Title = "2048"
	}

	h := help.New()
	h.ShowAll = false

	m := PlayModel{
		game:     g,
		solver:   cfg.Solver,
		tickRate: cfg.TickRate,
		title:    cfg.Title,
		keys:     DefaultPlayKeyMap(),
		help:     h,
		ticking:  cfg.Solver != nil,
	}
	m.keys.New.SetEnabled(m.canRestart())
	return m
}

// Init starts the tick loop when a solver is playing.
func (m PlayModel) Init() tea.Cmd {
	if m.solver != nil {
		return tickCmd(m.tickRate)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.game.Undo(1) {
			m.moved = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		if m.game.Redo(1) {
			m.moved = false
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if !m.canRestart() {
			return m, nil
		}
		m.game.Reset()
		m.moved = false
		m.err = nil
		if m.solver != nil && !m.ticking {
			m.ticking = true
			return m, tickCmd(m.tickRate)
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.solver != nil {
			m.paused = !m.paused
		}
		return m, nil
	}

	// Direction keys only drive the board when nobody else is playing.
	if m.solver != nil {
		return m, nil
	}
	if a, ok := m.keys.ActionFor(msg); ok {
		if avail, _ := m.game.IsActionAvailable(a); avail {
			m.apply(a)
		}
	}
	return m, nil
}

// handleTick lets the solver make one move.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.solver == nil || !m.ticking {
		return m, nil
	}
	if m.paused {
		return m, tickCmd(m.tickRate)
	}
	if m.game.GameOver() || m.solverDone() || m.err != nil {
		m.ticking = false
		return m, nil
	}

	m.apply(m.solver.Next(m.game))
	return m, tickCmd(m.tickRate)
}

func (m *PlayModel) apply(a game.Action) {
	reward, err := m.game.DoAction(a)
	if err != nil {
		m.err = err
		return
	}
	m.lastAction = a
	m.lastReward = reward
	m.moved = true
}

func (m PlayModel) solverDone() bool {
	done, ok := m.solver.(interface{ Done() bool })
	return ok && done.Done()
}

// canRestart reports whether a new game can be started. A replay's script
// only fits the recorded game, so it cannot.
func (m PlayModel) canRestart() bool {
	_, finite := m.solver.(interface{ Done() bool })
	return !finite
}

// View renders the board, the HUD and the help bar.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	board := m.game.State()
	hud := hudStyle.Render(fmt.Sprintf("Score: %d   Moves: %d   Max: %d",
		m.game.Score(), m.game.MoveCount(), board.MaxTile()))

	last := " "
	if m.moved {
		last = hudStyle.Render(m.lastAction.String())
		if m.lastReward > 0 {
			last += " " + rewardStyle.Render(fmt.Sprintf("+%d", m.lastReward))
		}
	}

	status := m.statusLine()

	view := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.title),
		"",
		hud,
		last,
		RenderBoard(board, m.freshCell()),
		status,
		"",
		helpStyle.Render(m.help.View(m.keys)),
	)
	if m.width > 0 {
		view = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
	}
	return view
}

// freshCell returns the tile spawned by the move just shown, if any.
func (m PlayModel) freshCell() *game.Cell {
	if !m.moved {
		return nil
	}
	if c, ok := m.game.LastSpawn(); ok {
		return &c
	}
	return nil
}

func (m PlayModel) statusLine() string {
	switch {
	case m.err != nil:
		return gameOverStyle.Render(m.err.Error())
	case m.game.GameOver() && m.canRestart():
		return gameOverStyle.Render("GAME OVER") + hudStyle.Render("  n: new game")
	case m.game.GameOver():
		return gameOverStyle.Render("GAME OVER")
	case m.solver != nil && m.paused:
		return hudStyle.Render(fmt.Sprintf("%s (paused)", m.solver.Title()))
	case m.solver != nil && !m.ticking:
		return hudStyle.Render(fmt.Sprintf("%s finished", m.solver.Title()))
	case m.solver != nil:
		return hudStyle.Render(fmt.Sprintf("Watching %s", m.solver.Title()))
	}
	return " "
}

// Game returns the game being shown.
func (m PlayModel) Game() *game.Game {
	return m.game
}

// Err returns the last error reported by the game, if any.
func (m PlayModel) Err() error {
	return m.err
}

// RunPlay starts the board screen on the alternate screen buffer and
// blocks until the user quits.
func RunPlay(g *game.Game, cfg PlayConfig) error {
	p := tea.NewProgram(
		NewPlayModel(g, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(PlayModel); ok {
		return m.Err()
	}
	return nil
}
