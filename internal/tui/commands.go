package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		todos, err := client.List(ctx)
		if err != nil {
			return errMsg{err: fmt.Errorf("loading todos: %w", err)}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func (m Model) create(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		todo, err := client.Create(ctx, title)
		if err != nil {
			return errMsg{err: fmt.Errorf("adding todo: %w", err)}
		}
		return mutatedMsg{status: fmt.Sprintf("added #%d", todo.ID)}
	}
}

func (m Model) setCompleted(id int64, completed bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		if _, err := client.SetCompleted(ctx, id, completed); err != nil {
			return errMsg{err: fmt.Errorf("updating todo #%d: %w", id, err)}
		}
		if completed {
			return mutatedMsg{status: fmt.Sprintf("completed #%d", id)}
		}
		return mutatedMsg{status: fmt.Sprintf("reopened #%d", id)}
	}
}

func (m Model) delete(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		if err := client.Delete(ctx, id); err != nil {
			return errMsg{err: fmt.Errorf("deleting todo #%d: %w", id, err)}
		}
		return mutatedMsg{status: fmt.Sprintf("deleted #%d", id)}
	}
}
