package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// AppModel manages the full flow: menu -> game -> menu, with the scoreboard
// reachable from the menu. Local play and every SSH connection run one.
type AppModel struct {
	opts   GameOptions
	width  int
	height int
	view   view
	menu   MenuModel
	game   Model
	scores ScoreboardModel
	err    error
}

// NewAppModel creates the app starting at the mode menu.
// opts.Mode is ignored; the menu selection decides it.
func NewAppModel(opts GameOptions, width, height int) AppModel {
	opts.Menu = true
	return AppModel{
		opts:   opts,
		width:  width,
		height: height,
		menu:   NewMenuModel(opts.Store, width, height),
	}
}

// Init initializes the app.
func (a AppModel) Init() tea.Cmd {
	return a.menu.Init()
}

// Update routes messages to the active view and switches views.
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	switch a.view {
	case viewGame:
		return a.updateGame(msg)
	case viewScores:
		return a.updateScores(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := a.menu.Update(msg)
	if mm, ok := updated.(MenuModel); ok {
		a.menu = mm
	}

	switch {
	case a.menu.IsQuitting():
		return a, tea.Quit

	case a.menu.WantsScoreboard():
		a.scores = NewScoreboardModel(a.opts.Store, a.width, a.height)
		a.view = viewScores
		return a, a.scores.Init()

	case a.menu.Selected() != "":
		opts := a.opts
		opts.Mode = a.menu.Selected()
		game, err := NewModel(opts, a.width, a.height)
		if err != nil {
			a.err = err
			return a, tea.Quit
		}
		// the intro plays once per app
		a.opts.Intro = false
		a.game = game
		a.view = viewGame
		return a, a.game.Init()
	}

	return a, cmd
}

func (a AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := a.game.Update(msg)
	if gm, ok := updated.(Model); ok {
		a.game = gm
	}

	if a.game.Err() != nil {
		a.err = a.game.Err()
	}
	if a.game.BackToMenu() {
		a.game.Stop()
		return a.toMenu()
	}
	return a, cmd
}

func (a AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := a.scores.Update(msg)
	if sm, ok := updated.(ScoreboardModel); ok {
		a.scores = sm
	}

	if a.scores.IsGoingBack() {
		return a.toMenu()
	}
	return a, cmd
}

func (a AppModel) toMenu() (tea.Model, tea.Cmd) {
	a.menu = NewMenuModel(a.opts.Store, a.width, a.height)
	a.view = viewMenu
	return a, a.menu.Init()
}

// View renders the active view.
func (a AppModel) View() string {
	switch a.view {
	case viewGame:
		return a.game.View()
	case viewScores:
		return a.scores.View()
	default:
		return a.menu.View()
	}
}

// Err returns the error that ended the app, if any.
func (a AppModel) Err() error {
	return a.err
}

// Stop cancels a running game.
func (a AppModel) Stop() {
	if a.view == viewGame {
		a.game.Stop()
	}
}

// RunApp runs the menu-driven app on the local terminal.
func RunApp(opts GameOptions, width, height int) error {
	model := NewAppModel(opts, width, height)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if app, ok := final.(AppModel); ok {
		app.Stop()
		if err == nil {
			err = app.Err()
		}
	}
	return err
}
