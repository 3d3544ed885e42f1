package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/mabhi256/jprobe/utils"
)

const PageSize = 10 // Number of lines to scroll per page

// classItem represents a registered class in the selection list
type classItem struct {
	info *registry.ClassInfo
}

func (i classItem) FilterValue() string {
	return i.info.Class.Name()
}

func (i classItem) Title() string {
	return fmt.Sprintf("%s %s", utils.GetKindIcon(i.info.Class.Kind()), i.info.Class.SimpleName())
}

func (i classItem) Description() string {
	return fmt.Sprintf("%s | %s", i.info.Class.Name(), i.info.Source)
}

type Options struct {
	Delimiter string
	// Class preselects a class; empty starts in the class list.
	Class  string
	Logger *log.Logger
}

func initialModel(reg *registry.ClassRegistry, opts Options) *Model {
	var items []list.Item
	for _, info := range reg.GetAllClasses() {
		if info.Class.IsPrimitive() {
			continue
		}
		items = append(items, classItem{info: info})
	}

	classList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	classList.Title = "Classes"
	classList.SetShowStatusBar(false)
	classList.SetFilteringEnabled(true)

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = "->"
	}

	invOpts := []investigator.Option{}
	if opts.Logger != nil {
		invOpts = append(invOpts, investigator.WithLogger(opts.Logger))
	}

	return &Model{
		registry:        reg,
		inv:             investigator.New(invOpts...),
		delimiter:       delimiter,
		pickMode:        true,
		classList:       classList,
		activeTab:       TabOverview,
		scrollPositions: make(map[TabType]int),
		help:            help.New(),
		results:         make(map[string]string),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// loadClass investigates a fresh instance of c and resets per-class state.
func (m *Model) loadClass(c *meta.Class) {
	m.inv.Load(meta.NewObject(c))
	summary, err := m.inv.Summarize()
	if err != nil {
		m.setError(err.Error())
		return
	}

	m.summary = summary
	m.methods = m.methods[:0]
	for _, method := range c.DeclaredMethods() {
		if len(method.Params) == 0 {
			m.methods = append(m.methods, method)
		}
	}
	m.selectedMethod = 0
	m.results = make(map[string]string)
	m.scrollPositions = make(map[TabType]int)
	m.pickMode = false
	m.clearError()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.classList.SetWidth(msg.Width)
		m.classList.SetHeight(msg.Height - 4) // Leave space for header and footer
		return m, nil

	case tea.KeyMsg:
		filtering := m.pickMode && m.classList.FilterState() == list.Filtering
		if !filtering && key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

		if m.showError && key.Matches(msg, keys.Escape) {
			m.clearError()
			return m, nil
		}

		if m.pickMode {
			return m.handlePickKeys(msg, filtering)
		}

		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Right):
			m.activeTab = utils.GetNextEnum(m.activeTab, TabInvoke)
		case key.Matches(msg, keys.Left):
			m.activeTab = utils.GetPrevEnum(m.activeTab, TabInvoke)
		case key.Matches(msg, keys.Classes), key.Matches(msg, keys.Escape):
			m.pickMode = true
		default:
			return m.handleTabSpecificKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handlePickKeys(msg tea.KeyMsg, filtering bool) (tea.Model, tea.Cmd) {
	if !filtering {
		switch {
		case key.Matches(msg, keys.Enter):
			if item, ok := m.classList.SelectedItem().(classItem); ok {
				m.loadClass(item.info.Class)
			}
			return m, nil
		case key.Matches(msg, keys.Escape) && m.summary != nil:
			m.pickMode = false
			return m, nil
		}
	}

	// Handle list navigation (arrow keys, filtering, etc.)
	var cmd tea.Cmd
	m.classList, cmd = m.classList.Update(msg)
	return m, cmd
}

func (m *Model) handleTabSpecificKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeTab == TabInvoke {
		return m.handleInvokeKeys(msg)
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.scrollUp(1)
	case key.Matches(msg, keys.Down):
		m.scrollDown(1)
	case key.Matches(msg, keys.PageUp):
		m.scrollUp(PageSize)
	case key.Matches(msg, keys.PageDown):
		m.scrollDown(PageSize)
	}
	return m, nil
}

func (m *Model) setError(message string) {
	m.errorMessage = message
	m.showError = true
}

func (m *Model) clearError() {
	m.errorMessage = ""
	m.showError = false
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showError {
		errorBox := utils.ErrorStyle.Render(m.errorMessage)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, errorBox)
	}

	if m.pickMode {
		return m.renderClassSelectionView()
	}

	header := m.renderHeader()
	tabBar := m.renderTabBar()
	helpView := m.help.View(keys)

	usedHeight := lipgloss.Height(header) + lipgloss.Height(tabBar) + lipgloss.Height(helpView) + 2
	contentHeight := max(m.height-usedHeight, 1)

	content := m.applyScrolling(m.renderActiveTab(), contentHeight)
	content = lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, content, helpView)
}

func (m *Model) renderActiveTab() string {
	switch m.activeTab {
	case TabOverview:
		return RenderOverviewTab(m.summary, m.inv.Class(), m.width)
	case TabMembers:
		return RenderMembersTab(m.inv.Class())
	case TabChain:
		return RenderChainTab(m.inv.Class(), m.inv.InheritanceChain(m.delimiter), m.width)
	case TabInvoke:
		return RenderInvokeTab(m.methods, m.selectedMethod, m.results)
	default:
		return utils.CriticalStyle.Render("Unknown tab")
	}
}

func (m *Model) renderHeader() string {
	title := "jprobe"
	if c := m.inv.Class(); c != nil {
		title = fmt.Sprintf("jprobe: %s %s", utils.GetKindIcon(c.Kind()), c.Name())
	}
	return utils.HeaderStyle.Width(m.width).Render(title)
}

func (m *Model) renderTabBar() string {
	var tabs []string
	for t := TabOverview; t <= TabInvoke; t++ {
		style := utils.TabInactiveStyle
		indicator := " "
		if t == m.activeTab {
			style = utils.TabActiveStyle
			indicator = "●"
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%s %s", indicator, t)))
	}

	tabLine := strings.Join(tabs, "  ")
	border := strings.Repeat("─", m.width)
	return lipgloss.JoinVertical(lipgloss.Left, tabLine, border)
}

func (m *Model) renderClassSelectionView() string {
	header := utils.HeaderStyle.Width(m.width).Render("Select a class to investigate")
	listView := m.classList.View()

	instructions := []string{
		"Enter: Investigate selected class",
		"/: Filter",
		"q: Quit",
	}
	instructionsView := utils.MutedStyle.Width(m.width).Render(strings.Join(instructions, " • "))

	statusText := fmt.Sprintf("%d classes registered", len(m.classList.Items()))
	statusView := utils.StatusBarStyle.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, header, listView, instructionsView, statusView)
}

// StartTUI runs the class browser until the user quits.
func StartTUI(reg *registry.ClassRegistry, opts Options) error {
	model := initialModel(reg, opts)

	if opts.Class != "" {
		c, err := reg.Lookup(opts.Class)
		if err != nil {
			return err
		}
		model.loadClass(c)
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
