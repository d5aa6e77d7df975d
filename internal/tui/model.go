package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo-api/internal/models"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TodoClient is the subset of the API client the view needs
type TodoClient interface {
	List(ctx context.Context) ([]models.Todo, error)
	Create(ctx context.Context, title string) (*models.Todo, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type todosLoadedMsg struct {
	todos []models.Todo
}

// mutatedMsg reports a successful create, toggle or delete
type mutatedMsg struct {
	status string
}

type errMsg struct {
	err error
}

// Model is the bubbletea model for the todo list view
type Model struct {
	client  TodoClient
	timeout time.Duration

	list   list.Model
	input  textinput.Model
	adding bool

	loading bool
	status  string
	err     error
}

// New creates the view model. Nothing is fetched until Init runs.
func New(client TodoClient, timeout time.Duration) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown", "f"), key.WithHelp("→/l", "next page"))
	l.KeyMap.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	return Model{
		client:  client,
		timeout: timeout,
		list:    l,
		input:   ti,
		loading: true,
	}
}

// Init loads the list from the server
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case todosLoadedMsg:
		m.loading = false
		m.err = nil
		items := make([]list.Item, 0, len(msg.todos))
		for _, t := range msg.todos {
			items = append(items, todoItem{todo: t})
		}
		cmd := m.list.SetItems(items)
		m.list.Title = headerTitle(msg.todos)
		return m, cmd

	case mutatedMsg:
		m.status = msg.status
		m.loading = true
		return m, m.load()

	case errMsg:
		// the displayed list is kept as is
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, keys.Submit):
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		return m, m.create(title)
	case key.Matches(msg, keys.Cancel):
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Add):
		m.adding = true
		m.err = nil
		return m, m.input.Focus()
	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, keys.Toggle):
		if todo, ok := m.selected(); ok {
			return m, m.setCompleted(todo.ID, !todo.Completed)
		}
		return m, nil
	case key.Matches(msg, keys.Delete):
		if todo, ok := m.selected(); ok {
			return m, m.delete(todo.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✖ " + m.err.Error()))
	case m.loading:
		b.WriteString(mutedStyle.Render("loading..."))
	case m.status != "":
		b.WriteString(successStyle.Render("✔ " + m.status))
	}
	return b.String()
}

// Todos returns the todos currently displayed
func (m Model) Todos() []models.Todo {
	todos := make([]models.Todo, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if ti, ok := it.(todoItem); ok {
			todos = append(todos, ti.todo)
		}
	}
	return todos
}

func (m Model) selected() (models.Todo, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return models.Todo{}, false
	}
	return it.todo, true
}

func headerTitle(todos []models.Todo) string {
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
}

// Run starts the full-screen view and blocks until the user quits
func Run(client TodoClient, timeout time.Duration) error {
	p := tea.NewProgram(New(client, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
