package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	areadto "scrub/internal/modules/area/dto"
	economydto "scrub/internal/modules/economy/dto"
	sessiondto "scrub/internal/modules/session/dto"
	verificationdto "scrub/internal/modules/verification/dto"
	"scrub/internal/ui/theme"
)

// Each port is the minimal interface this read-only dashboard requires.

type areaPort interface {
	List(ctx context.Context) ([]areadto.AreaOutput, error)
}

type sessionPort interface {
	Status(ctx context.Context, areaID string) (sessiondto.SessionOutput, error)
}

type economyPort interface {
	Balance(ctx context.Context) (economydto.BalanceOutput, error)
	Streak(ctx context.Context) (economydto.StreakOutput, error)
}

type verificationPort interface {
	Eligibility(ctx context.Context) (verificationdto.EligibilityOutput, error)
}

type areasLoadedMsg struct {
	areas []areadto.AreaOutput
	err   error
}

type statusLoadedMsg struct {
	status sessiondto.SessionOutput
	err    error
}

type economyLoadedMsg struct {
	balance     economydto.BalanceOutput
	streak      economydto.StreakOutput
	eligibility verificationdto.EligibilityOutput
	err         error
}

// Model is the root Bubble Tea model: an area list on the left, the
// selected area's latest session on the right, and an economy strip at
// the bottom. Mutations go through the CLI; this view only reads.
type Model struct {
	homePath string

	areas        areaPort
	sessions     sessionPort
	economy      economyPort
	verification verificationPort

	width  int
	height int

	areaList  []areadto.AreaOutput
	selected  int
	status    sessiondto.SessionOutput
	hasStatus bool

	balance     economydto.BalanceOutput
	streak      economydto.StreakOutput
	eligibility verificationdto.EligibilityOutput

	errText string
}

func NewModel(homePath string, areas areaPort, sessions sessionPort, economy economyPort, verification verificationPort) Model {
	return Model{
		homePath:     homePath,
		areas:        areas,
		sessions:     sessions,
		economy:      economy,
		verification: verification,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadAreas(), m.loadEconomy())
}

func (m Model) loadAreas() tea.Cmd {
	return func() tea.Msg {
		areas, err := m.areas.List(context.Background())
		return areasLoadedMsg{areas: areas, err: err}
	}
}

func (m Model) loadStatus(areaID string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.sessions.Status(context.Background(), areaID)
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) loadEconomy() tea.Cmd {
	return func() tea.Msg {
		balance, err := m.economy.Balance(context.Background())
		if err != nil {
			return economyLoadedMsg{err: err}
		}
		streak, err := m.economy.Streak(context.Background())
		if err != nil {
			return economyLoadedMsg{err: err}
		}
		eligibility, err := m.verification.Eligibility(context.Background())
		if err != nil {
			return economyLoadedMsg{err: err}
		}
		return economyLoadedMsg{balance: balance, streak: streak, eligibility: eligibility}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case areasLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.areaList = msg.areas
		if m.selected >= len(m.areaList) {
			m.selected = 0
		}
		if len(m.areaList) > 0 {
			return m, m.loadStatus(m.areaList[m.selected].ID)
		}
		return m, nil

	case statusLoadedMsg:
		if msg.err != nil {
			m.hasStatus = false
			return m, nil
		}
		m.status = msg.status
		m.hasStatus = true
		return m, nil

	case economyLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.balance = msg.balance
		m.streak = msg.streak
		m.eligibility = msg.eligibility
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				return m, m.loadStatus(m.areaList[m.selected].ID)
			}
		case "down", "j":
			if m.selected < len(m.areaList)-1 {
				m.selected++
				return m, m.loadStatus(m.areaList[m.selected].ID)
			}
		case "r":
			return m, tea.Batch(m.loadAreas(), m.loadEconomy())
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	left := m.renderAreas()
	right := m.renderStatus()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := m.renderFooter()

	view := lipgloss.JoinVertical(lipgloss.Left, body, footer)
	if m.errText != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, theme.Bad.Render(m.errText))
	}
	return theme.App.Width(m.width).Render(view)
}

func (m Model) renderAreas() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Areas"))
	b.WriteString("\n\n")
	if len(m.areaList) == 0 {
		b.WriteString(theme.Muted.Render("no areas yet"))
	}
	for i, area := range m.areaList {
		line := fmt.Sprintf("%s (%s)", area.Name, area.Persona)
		if i == m.selected {
			line = theme.Hot.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return theme.PaneActive.Width(m.width / 3).Render(b.String())
}

func (m Model) renderStatus() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Latest session"))
	b.WriteString("\n\n")
	if !m.hasStatus {
		b.WriteString(theme.Muted.Render("no session for this area"))
		return theme.Pane.Width(m.width * 2 / 3).Render(b.String())
	}
	state := "in progress"
	if m.status.Completed {
		state = theme.Done.Render("completed")
	}
	b.WriteString(fmt.Sprintf("%s  base=%d total=%.1f\n", state, m.status.BasePoints, m.status.TotalPoints))
	tier := m.status.Tier
	if tier == "golden" {
		tier = theme.Golden.Render(tier)
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("verification: %s / %s", tier, m.status.Outcome)))
	b.WriteString("\n\n")
	for _, task := range m.status.Tasks {
		mark := "[ ]"
		title := task.Title
		if task.Completed {
			mark = theme.Done.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s %s (%d pts)\n", mark, title, task.Points))
	}
	return theme.Pane.Width(m.width * 2 / 3).Render(b.String())
}

func (m Model) renderFooter() string {
	golden := "locked"
	if m.eligibility.GoldenEligible {
		golden = "eligible"
	}
	parts := []string{
		fmt.Sprintf("points %.1f", m.balance.Available),
		fmt.Sprintf("streak %d", m.streak.Count),
		fmt.Sprintf("today %d/%d", m.eligibility.CompletedToday, m.eligibility.DailyTarget),
		fmt.Sprintf("golden %s", golden),
	}
	help := theme.Muted.Render("j/k select · r refresh · q quit")
	return theme.Pane.Width(m.width - 4).Render(theme.Title.Render(strings.Join(parts, "  ·  ")) + "\n" + help)
}
