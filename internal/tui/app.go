// Package tui is the presentation collaborator: it observes round
// snapshots and issues commands, and owns no game state of its own.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/blackjack/internal/config"
	"github.com/jask/blackjack/internal/database/repository"
	"github.com/jask/blackjack/internal/game"
	"github.com/jask/blackjack/internal/save"
	"github.com/jask/blackjack/internal/session"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	redSuit     = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type appState string

const (
	stateMenu    appState = "menu"
	stateGame    appState = "game"
	stateSaves   appState = "saves"
	stateOptions appState = "options"
)

type inputStage string

const (
	inputNone     inputStage = ""
	inputFilename inputStage = "filename"
	inputTag      inputStage = "tag"
	inputImport   inputStage = "importPath"
	inputExport   inputStage = "exportPath"
)

type keyMap struct {
	Hit   key.Binding
	Stand key.Binding
	OneUp key.Binding
	TwoUp key.Binding
	Save  key.Binding
	Saves key.Binding
	Opts  key.Binding
	Back  key.Binding
	Quit  key.Binding
	Enter key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Hit:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		OneUp: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "new 1-player game")),
		TwoUp: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "new 2-player game")),
		Save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Saves: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "saved games")),
		Opts:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "options")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// App ties together views over one session controller.
type App struct {
	ctx        context.Context
	controller *session.Controller
	archive    *repository.RoundRepo
	cfg        config.Config

	state   appState
	keys    keyMap
	status  string
	summary *repository.Summary

	saves       []save.Metadata
	savesCursor int

	formatCursor int

	input           textinput.Model
	stage           inputStage
	pendingFilename string
}

// New builds the app. archive may be nil when the round archive is
// unavailable; the menu just skips the record line then.
func New(ctx context.Context, cfg config.Config, c *session.Controller, archive *repository.RoundRepo) *App {
	in := textinput.New()
	in.CharLimit = 64
	in.Width = 32
	return &App{
		ctx:        ctx,
		controller: c,
		archive:    archive,
		cfg:        cfg,
		state:      stateMenu,
		keys:       newKeyMap(),
		input:      in,
	}
}

func (a *App) Init() tea.Cmd {
	a.refreshSummary()
	return tick()
}

func (a *App) refreshSummary() {
	if a.archive == nil {
		return
	}
	if s, err := a.archive.Summarize(a.ctx); err == nil {
		a.summary = &s
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// the dealer and timer advance in the background; just re-render
		return a, tick()
	case tea.KeyMsg:
		if a.stage != inputNone {
			return a.updateInput(msg)
		}
		switch a.state {
		case stateMenu:
			return a.updateMenu(msg)
		case stateGame:
			return a.updateGame(msg)
		case stateSaves:
			return a.updateSaves(msg)
		case stateOptions:
			return a.updateOptions(msg)
		}
	}
	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.OneUp):
		a.controller.NewGame(false)
		a.state = stateGame
		a.status = ""
	case key.Matches(msg, a.keys.TwoUp):
		a.controller.NewGame(true)
		a.state = stateGame
		a.status = ""
	case key.Matches(msg, a.keys.Saves):
		a.saves = a.controller.ListSaves()
		a.savesCursor = 0
		a.state = stateSaves
	case key.Matches(msg, a.keys.Opts):
		a.formatCursor = formatIndex(a.controller.PreferredFormat())
		a.state = stateOptions
	}
	return a, nil
}

func (a *App) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.refreshSummary()
		a.state = stateMenu
	case key.Matches(msg, a.keys.Hit):
		a.controller.Hit()
	case key.Matches(msg, a.keys.Stand):
		a.controller.Stand()
	case key.Matches(msg, a.keys.OneUp):
		a.controller.NewGame(false)
	case key.Matches(msg, a.keys.TwoUp):
		a.controller.NewGame(true)
	case key.Matches(msg, a.keys.Save):
		a.stage = inputFilename
		a.input.Placeholder = "save name"
		a.input.SetValue("")
		a.input.Focus()
	}
	return a, nil
}

func (a *App) updateSaves(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.state = stateMenu
	case msg.String() == "up":
		if a.savesCursor > 0 {
			a.savesCursor--
		}
	case msg.String() == "down":
		if a.savesCursor < len(a.saves)-1 {
			a.savesCursor++
		}
	case key.Matches(msg, a.keys.Enter):
		if len(a.saves) == 0 {
			return a, nil
		}
		name := a.saves[a.savesCursor].Filename
		if a.controller.Load(name) {
			a.state = stateGame
			a.status = "loaded " + name
		} else if alt, ok := a.controller.SuggestSave(name); ok {
			a.status = fmt.Sprintf("could not load %s, closest match is %s", name, alt)
		} else {
			a.status = "could not load " + name
		}
	case msg.String() == "i":
		a.stage = inputImport
		a.input.Placeholder = "path to import"
		a.input.SetValue("")
		a.input.Focus()
	case msg.String() == "x":
		if len(a.saves) > 0 {
			a.stage = inputExport
			a.input.Placeholder = "export destination path"
			a.input.SetValue("")
			a.input.Focus()
		}
	}
	return a, nil
}

func (a *App) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.state = stateMenu
	case msg.String() == "up":
		if a.formatCursor > 0 {
			a.formatCursor--
		}
	case msg.String() == "down":
		if a.formatCursor < len(save.Formats)-1 {
			a.formatCursor++
		}
	case key.Matches(msg, a.keys.Enter):
		f := save.Formats[a.formatCursor]
		a.controller.SetPreferredFormat(f)
		a.status = "save format set to " + string(f)
		a.state = stateMenu
	}
	return a, nil
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.stage = inputNone
		a.input.Blur()
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.input.Value())
		stage := a.stage
		a.stage = inputNone
		a.input.Blur()
		return a.finishInput(stage, value)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) finishInput(stage inputStage, value string) (tea.Model, tea.Cmd) {
	switch stage {
	case inputFilename:
		if value == "" {
			return a, nil
		}
		a.pendingFilename = value
		a.stage = inputTag
		a.input.Placeholder = "tag (optional)"
		a.input.SetValue("")
		a.input.Focus()
	case inputTag:
		if a.controller.Save(a.pendingFilename, value) {
			a.status = "saved " + a.pendingFilename
		} else {
			a.status = "save failed"
		}
	case inputImport:
		data, err := os.ReadFile(value)
		if err != nil {
			a.status = "import failed: " + err.Error()
			return a, nil
		}
		if a.controller.ImportExternal(string(data)) {
			a.state = stateGame
			a.status = "imported " + value
		} else {
			a.status = "file is not a recognized save"
		}
	case inputExport:
		name := a.saves[a.savesCursor].Filename
		dst, err := os.Create(value)
		if err != nil {
			a.status = "export failed: " + err.Error()
			return a, nil
		}
		defer dst.Close()
		if a.controller.ExportSaved(name, dst) {
			a.status = fmt.Sprintf("exported %s to %s", name, value)
		} else {
			a.status = "export failed"
		}
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case stateMenu:
		body = a.viewMenu()
	case stateGame:
		body = a.viewGame()
	case stateSaves:
		body = a.viewSaves()
	case stateOptions:
		body = a.viewOptions()
	}
	if a.stage != inputNone {
		body += "\n\n" + a.input.View()
	}
	if a.status != "" {
		body += "\n\n" + statusStyle.Render(a.status)
	}
	return body + "\n"
}

func (a *App) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Blackjack") + "\n\n")
	b.WriteString("  1  new game\n")
	b.WriteString("  2  new two-player game\n")
	b.WriteString("  l  saved games\n")
	b.WriteString("  o  options\n")
	b.WriteString("  q  quit\n")
	if a.summary != nil && a.summary.TotalRounds > 0 {
		b.WriteString("\n" + statusStyle.Render(fmt.Sprintf(
			"record: %d rounds, %d won, %d lost, %d bust, %d push",
			a.summary.TotalRounds, a.summary.Wins, a.summary.Losses, a.summary.Busts, a.summary.Pushes)))
	}
	return b.String()
}

func (a *App) viewGame() string {
	r := a.controller.Round()
	var b strings.Builder

	dealerLabel := fmt.Sprintf("Dealer  (%d)", a.controller.DealerVisibleScore())
	hideHole := r.Status == game.StatusPlayer1Turn || r.Status == game.StatusPlayer2Turn
	b.WriteString(titleStyle.Render(dealerLabel) + "\n")
	b.WriteString(renderHand(r.DealerHand, hideHole) + "\n\n")

	b.WriteString(playerLine("Player 1", r.Player1Score, r.Player1Result, r.Status == game.StatusPlayer1Turn) + "\n")
	b.WriteString(renderHand(r.Player1Hand, false) + "\n")

	if r.IsTwoPlayerMode {
		b.WriteString("\n" + playerLine("Player 2", r.Player2Score, r.Player2Result, r.Status == game.StatusPlayer2Turn) + "\n")
		b.WriteString(renderHand(r.Player2Hand, false) + "\n")
	}

	b.WriteString("\n" + statusStyle.Render(fmt.Sprintf("%s · %s", statusLabel(r.Status), formatElapsed(r.TimeElapsed))))
	b.WriteString("\n" + dimStyle.Render("h hit · s stand · 1/2 new game · ctrl+s save · esc menu · q quit"))
	return b.String()
}

func (a *App) viewSaves() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Saved games") + "\n\n")
	if len(a.saves) == 0 {
		b.WriteString(statusStyle.Render("no saved games yet") + "\n")
	}
	for i, e := range a.saves {
		prefix := "  "
		if i == a.savesCursor {
			prefix = "> "
		}
		when := time.UnixMilli(e.Timestamp).Format("2 Jan 15:04")
		line := fmt.Sprintf("%s%-24s %-10s %s  P1 %d vs dealer %d",
			prefix, e.Filename, e.GameMode, when, e.Player1Score, e.DealerScore)
		if e.Tag != "" {
			line += "  · " + e.Tag
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter load · i import file · x export selected · esc back"))
	return b.String()
}

func (a *App) viewOptions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Options") + "\n\n")
	b.WriteString("preferred save format:\n")
	for i, f := range save.Formats {
		prefix := "  "
		if i == a.formatCursor {
			prefix = "> "
		}
		marker := " "
		if f == a.controller.PreferredFormat() {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, f))
	}
	b.WriteString("\n" + dimStyle.Render("enter choose · esc back"))
	return b.String()
}

// renderHand draws cards side by side, hiding the dealer's hole card
// while a player still holds the turn.
func renderHand(hand []game.Card, hideFirst bool) string {
	if len(hand) == 0 {
		return dimStyle.Render("  (no cards)")
	}
	boxes := make([]string, len(hand))
	for i, c := range hand {
		if hideFirst && i == 0 {
			boxes[i] = cardStyle.Render("??")
			continue
		}
		face := shortRank(c.Rank) + c.Suit.Symbol()
		if c.Suit == game.SuitHearts || c.Suit == game.SuitDiamonds {
			face = redSuit.Render(face)
		}
		boxes[i] = cardStyle.Render(face)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func playerLine(name string, score int, result game.Result, active bool) string {
	label := fmt.Sprintf("%s  (%d)", name, score)
	if active {
		label += "  ← your turn"
	}
	out := titleStyle.Render(label)
	switch result {
	case game.ResultWin:
		out += "  " + winStyle.Render("WIN")
	case game.ResultLoss:
		out += "  " + lossStyle.Render("LOSS")
	case game.ResultBust:
		out += "  " + lossStyle.Render("BUST")
	case game.ResultPush:
		out += "  " + statusStyle.Render("PUSH")
	}
	return out
}

func shortRank(r game.Rank) string {
	switch r {
	case game.RankAce:
		return "A"
	case game.RankJack:
		return "J"
	case game.RankQueen:
		return "Q"
	case game.RankKing:
		return "K"
	default:
		return fmt.Sprintf("%d", r.Value())
	}
}

func statusLabel(s game.Status) string {
	switch s {
	case game.StatusPlayer1Turn:
		return "player 1 to act"
	case game.StatusPlayer2Turn:
		return "player 2 to act"
	case game.StatusDealerTurn:
		return "dealer playing..."
	case game.StatusGameOver:
		return "round over"
	}
	return string(s)
}

func formatElapsed(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatIndex(f save.Format) int {
	for i, g := range save.Formats {
		if g == f {
			return i
		}
	}
	return 0
}
