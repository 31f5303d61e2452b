// Package tui is a terminal browser over the venture catalog. It drives the
// same query state and pipeline as the web portfolio page.
package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/ventures/internal/portfolio"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeDetail
)

// categoryKeys and stageKeys line up with portfolio.Categories and
// portfolio.Stages. Stages use the shifted digits.
var (
	categoryKeys = []string{"1", "2", "3", "4", "5", "6", "7"}
	stageKeys    = []string{"!", "@", "#", "$", "%"}
)

type App struct {
	catalog *portfolio.Catalog
	query   *portfolio.QueryState
	view    portfolio.View
	cursor  int
	mode    mode

	width  int
	height int

	searchInput textinput.Model
}

// NewApp starts a browser over c with a default query state. The catalog
// is fixed for the life of the program.
func NewApp(c *portfolio.Catalog) *App {
	ti := textinput.New()
	ti.Placeholder = "Search ventures..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 0

	a := &App{
		catalog:     c,
		query:       portfolio.NewQueryState(),
		searchInput: ti,
	}
	a.refresh()
	return a
}

// Results returns the current pipeline output.
func (a *App) Results() portfolio.View { return a.view }

func (a *App) Query() *portfolio.QueryState { return a.query }

func (a *App) refresh() {
	a.view = portfolio.Apply(a.catalog, a.query)
	if a.cursor >= len(a.view.Ventures) {
		a.cursor = max(0, len(a.view.Ventures)-1)
	}
}

func (a *App) selected() (portfolio.Venture, bool) {
	if a.cursor < len(a.view.Ventures) {
		return a.view.Ventures[a.cursor], true
	}
	return portfolio.Venture{}, false
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeDetail:
		switch msg.String() {
		case "esc", "enter", "backspace":
			a.mode = modeNormal
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	key := msg.String()
	if i := slices.Index(categoryKeys, key); i >= 0 {
		a.query.ToggleCategory(portfolio.Categories[i])
		a.cursor = 0
		a.refresh()
		return a, nil
	}
	if i := slices.Index(stageKeys, key); i >= 0 {
		a.query.ToggleStage(portfolio.Stages[i])
		a.cursor = 0
		a.refresh()
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.view.Ventures)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "enter":
		if _, ok := a.selected(); ok {
			a.mode = modeDetail
		}
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.query.Search())
		a.searchInput.CursorEnd()
		a.searchInput.Focus()
		return a, textinput.Blink
	case "s":
		a.query.SetSort(nextSort(a.query.Sort()))
		a.refresh()
	case "c":
		a.query.Clear()
		a.searchInput.SetValue("")
		a.cursor = 0
		a.refresh()
	}
	return a, nil
}

// handleSearchKey feeds the input and re-runs the pipeline on every
// change of value. esc discards the search, enter keeps it.
func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.query.SetSearch("")
		a.refresh()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if v := a.searchInput.Value(); v != a.query.Search() {
		a.query.SetSearch(v)
		a.cursor = 0
		a.refresh()
	}
	return a, cmd
}

func nextSort(o portfolio.SortOption) portfolio.SortOption {
	i := slices.Index(portfolio.SortOptions, o)
	return portfolio.SortOptions[(i+1)%len(portfolio.SortOptions)]
}

func (a *App) View() string {
	width := a.width
	if width == 0 {
		width = 80
	}
	height := a.height
	if height == 0 {
		height = 24
	}

	if a.mode == modeDetail {
		if v, ok := a.selected(); ok {
			return lipgloss.JoinVertical(lipgloss.Left,
				headerStyle.Render("Ventures"),
				renderDetail(v, width),
				hintStyle.Render("esc back  q quit"),
			)
		}
	}

	var search string
	if a.mode == modeSearch {
		search = a.searchInput.View()
	} else if s := a.query.Search(); s != "" {
		search = searchPromptStyle.Render("/ ") + s
	} else {
		search = itemDimStyle.Render("/ search")
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Ventures"),
		" "+search,
		renderFacetBar(a.query, width),
		"",
	)
	bottom := lipgloss.JoinVertical(lipgloss.Left,
		"",
		countLine(a.view),
		hintStyle.Render("1-7 category  !-% stage  s sort  c clear  enter open  q quit"),
	)

	listHeight := height - lipgloss.Height(top) - lipgloss.Height(bottom)
	list := renderList(a.view.Ventures, a.cursor, listHeight, width)

	return strings.Join([]string{top, list, bottom}, "\n")
}

// Run starts the browser in the alternate screen and blocks until it exits.
func Run(c *portfolio.Catalog) error {
	p := tea.NewProgram(NewApp(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
