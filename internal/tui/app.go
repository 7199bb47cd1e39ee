// ABOUTME: Root bubbletea model for the dashboard TUI
// ABOUTME: Manages screen state for the list, detail, form, and delete flows

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/finance"
	"github.com/fespschulte/amora-simulator/internal/session"
	"github.com/fespschulte/amora-simulator/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenList
	ScreenDetail
	ScreenForm
	ScreenConfirmDelete
	ScreenExpired
)

const requestTimeout = 30 * time.Second

// dataLoadedMsg is sent when the profile and simulation list are fetched
type dataLoadedMsg struct {
	profile *session.Profile
	sims    []client.Simulation
	err     error
}

// simSavedMsg is sent when a create or update completes
type simSavedMsg struct {
	sim *client.Simulation
	err error
}

// simDeletedMsg is sent when a delete completes
type simDeletedMsg struct {
	id  string
	err error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	screen  Screen
	width   int
	height  int
	err     error
	status  string
	profile *session.Profile
	sims    []client.Simulation

	list     table.Model
	loading  spinner.Model
	form     *simForm
	selected *client.Simulation
}

// New creates the dashboard application model
func New(apiClient *client.Client) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		client:  apiClient,
		screen:  ScreenLoading,
		loading: sp,
		list:    newSimTable(nil),
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(apiClient *client.Client) error {
	p := tea.NewProgram(New(apiClient), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loading.Tick, a.loadData)
}

// loadData fetches the profile and simulation list in parallel
func (a *App) loadData() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var (
		profile *session.Profile
		sims    []client.Simulation
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.client.Me(ctx)
		profile = p
		return err
	})
	g.Go(func() error {
		s, err := a.client.ListSimulations(ctx)
		sims = s
		return err
	})
	return dataLoadedMsg{profile: profile, sims: sims, err: g.Wait()}
}

func (a *App) saveSimulation(form *simForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		input := form.input()
		if form.editing() {
			sim, err := a.client.UpdateSimulation(ctx, form.editingID, input)
			return simSavedMsg{sim: sim, err: err}
		}
		sim, err := a.client.CreateSimulation(ctx, input)
		return simSavedMsg{sim: sim, err: err}
	}
}

func (a *App) deleteSimulation(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := a.client.DeleteSimulation(ctx, id)
		// Already gone reaches the same end state.
		if errors.Is(err, client.ErrNotFound) {
			err = nil
		}
		return simDeletedMsg{id: id, err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case dataLoadedMsg:
		if a.expiredOr(msg.err) {
			return a, nil
		}
		a.profile = msg.profile
		a.sims = msg.sims
		a.list = newSimTable(msg.sims)
		a.screen = ScreenList
		return a, nil

	case simSavedMsg:
		if a.expiredOr(msg.err) {
			return a, nil
		}
		a.status = fmt.Sprintf("Saved %s", msg.sim.DisplayName())
		a.screen = ScreenLoading
		return a, tea.Batch(a.loading.Tick, a.loadData)

	case simDeletedMsg:
		if a.expiredOr(msg.err) {
			return a, nil
		}
		a.status = "Simulation deleted"
		a.selected = nil
		a.screen = ScreenLoading
		return a, tea.Batch(a.loading.Tick, a.loadData)

	case spinner.TickMsg:
		if a.screen == ScreenLoading {
			var cmd tea.Cmd
			a.loading, cmd = a.loading.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.screen == ScreenForm {
		return a.updateForm(msg)
	}
	return a, nil
}

// expiredOr routes an error to the right screen. Returns true when the
// message was handled as a failure.
func (a *App) expiredOr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, client.ErrUnauthenticated) {
		a.screen = ScreenExpired
		return true
	}
	a.err = err
	a.screen = ScreenList
	return true
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form owns all keys while active.
	if a.screen == ScreenForm {
		if msg.String() == "esc" {
			a.form = nil
			a.screen = ScreenList
			return a, nil
		}
		return a.updateForm(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if a.screen == ScreenDetail {
			a.screen = ScreenList
			return a, nil
		}
		return a, tea.Quit
	}

	switch a.screen {
	case ScreenExpired:
		return a, tea.Quit

	case ScreenList:
		return a.handleListKey(msg)

	case ScreenDetail:
		switch msg.String() {
		case "esc":
			a.screen = ScreenList
		case "e":
			a.form = newSimForm(a.selected)
			a.screen = ScreenForm
			return a, a.form.form.Init()
		case "d":
			a.screen = ScreenConfirmDelete
		}
		return a, nil

	case ScreenConfirmDelete:
		switch msg.String() {
		case "y":
			a.screen = ScreenLoading
			return a, tea.Batch(a.loading.Tick, a.deleteSimulation(a.selected.ID))
		case "n", "esc":
			a.screen = ScreenDetail
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if sim := a.selectedSim(); sim != nil {
			a.selected = sim
			a.screen = ScreenDetail
		}
		return a, nil
	case "n":
		a.form = newSimForm(nil)
		a.screen = ScreenForm
		return a, a.form.form.Init()
	case "e":
		if sim := a.selectedSim(); sim != nil {
			a.selected = sim
			a.form = newSimForm(sim)
			a.screen = ScreenForm
			return a, a.form.form.Init()
		}
		return a, nil
	case "d":
		if sim := a.selectedSim(); sim != nil {
			a.selected = sim
			a.screen = ScreenConfirmDelete
		}
		return a, nil
	case "r":
		a.status = ""
		a.err = nil
		a.screen = ScreenLoading
		return a, tea.Batch(a.loading.Tick, a.loadData)
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.form.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form.form = f
	}

	switch a.form.form.State {
	case huh.StateCompleted:
		form := a.form
		a.form = nil
		a.screen = ScreenLoading
		return a, tea.Batch(a.loading.Tick, a.saveSimulation(form))
	case huh.StateAborted:
		a.form = nil
		a.screen = ScreenList
		return a, nil
	}
	return a, cmd
}

func (a *App) selectedSim() *client.Simulation {
	idx := a.list.Cursor()
	if idx < 0 || idx >= len(a.sims) {
		return nil
	}
	return &a.sims[idx]
}

// View implements tea.Model
func (a *App) View() string {
	switch a.screen {
	case ScreenLoading:
		return fmt.Sprintf("\n  %s Loading...\n", a.loading.View())
	case ScreenExpired:
		return styles.Panel.Render(
			styles.StatusError.Render("Sessão expirada.") +
				"\nFaça login novamente com 'amora login'.\n\n" +
				styles.Help.Render("press any key to exit"))
	case ScreenDetail:
		return a.viewDetail()
	case ScreenForm:
		return a.viewForm()
	case ScreenConfirmDelete:
		return a.viewConfirmDelete()
	default:
		return a.viewList()
	}
}

func (a *App) viewList() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("aMORA Simulations"))
	sb.WriteString("\n")
	if a.profile != nil {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s <%s>", a.profile.Username, a.profile.Email)))
		sb.WriteString("\n")
	}

	summary := Summarize(a.sims)
	if summary.Count > 0 {
		sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %d\n\n",
			styles.Label.Render("Total:"),
			styles.Currency.Render(finance.FormatBRL(summary.TotalPropertyValue)),
			styles.Label.Render("Monthly savings:"),
			styles.Currency.Render(finance.FormatBRL(summary.TotalMonthlySavings)),
			styles.Label.Render("Scenarios:"),
			summary.Count))
		sb.WriteString(a.list.View())
		sb.WriteString("\n")
	} else {
		sb.WriteString(styles.Subtitle.Render("No simulations yet. Press 'n' to create one."))
		sb.WriteString("\n")
	}

	if a.err != nil {
		sb.WriteString(styles.StatusError.Render("Error: " + a.err.Error()))
		sb.WriteString("\n")
	} else if a.status != "" {
		sb.WriteString(styles.StatusOK.Render(a.status))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("enter view · n new · e edit · d delete · r refresh · q quit"))
	return sb.String()
}

func (a *App) viewDetail() string {
	s := a.selected
	if s == nil {
		return a.viewList()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(s.DisplayName()))
	sb.WriteString("\n")

	rows := []struct{ label, value string }{
		{"Property value", finance.FormatBRL(s.PropertyValue)},
		{"Down payment", fmt.Sprintf("%s (%.0f%%)", finance.FormatBRL(s.DownPaymentValue), s.DownPaymentPercentage)},
		{"Financing", finance.FormatBRL(s.FinancingAmount)},
		{"Additional costs", finance.FormatBRL(s.AdditionalCosts)},
		{"Monthly savings", fmt.Sprintf("%s over %d years", finance.FormatBRL(s.MonthlySavings), s.ContractYears)},
		{"Created", s.CreatedAt.Format("2006-01-02 15:04")},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			styles.Label.Render(fmt.Sprintf("%-17s", row.label+":")),
			styles.Value.Render(row.value)))
	}
	if s.Notes != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", styles.Label.Render(fmt.Sprintf("%-17s", "Notes:")), s.Notes))
	}

	sb.WriteString(styles.Help.Render("e edit · d delete · esc back · q back"))
	return styles.Panel.Render(sb.String())
}

func (a *App) viewForm() string {
	title := "New simulation"
	if a.form.editing() {
		title = "Edit simulation"
	}

	out := styles.Title.Render(title) + "\n" + a.form.form.View()
	if preview := a.form.preview(); preview != "" {
		out += "\n" + preview
	}
	return out
}

func (a *App) viewConfirmDelete() string {
	name := ""
	if a.selected != nil {
		name = a.selected.DisplayName()
	}
	return styles.ActivePanel.Render(fmt.Sprintf("Delete %s?\n\n%s",
		name,
		styles.Help.Render("y confirm · n cancel")))
}

func newSimTable(sims []client.Simulation) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 32},
		{Title: "Value", Width: 16},
		{Title: "Down payment", Width: 13},
		{Title: "Monthly savings", Width: 16},
	}

	rows := make([]table.Row, 0, len(sims))
	for i := range sims {
		s := &sims[i]
		rows = append(rows, table.Row{
			s.DisplayName(),
			finance.FormatBRL(s.PropertyValue),
			fmt.Sprintf("%.0f%%", s.DownPaymentPercentage),
			finance.FormatBRL(s.MonthlySavings),
		})
	}

	height := len(sims)
	if height < 1 {
		height = 1
	}
	if height > 12 {
		height = 12
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(styles.Accent)
	ts.Selected = ts.Selected.Foreground(styles.Text).Background(styles.Surface).Bold(true)
	t.SetStyles(ts)
	return t
}
