package service

import (
	"errors"
	"strings"
	"sync"

	"todo-api/internal/logging"
	"todo-api/internal/models"
	"todo-api/internal/storage"

	"github.com/sirupsen/logrus"
)

// ErrTitleRequired is returned when a todo is created without a usable title
var ErrTitleRequired = errors.New("title must be a non-empty string")

// TodoService implements the todo operations on top of a Store.
// The mutex makes every operation atomic with respect to the others,
// including the multi-step ones (allocate+insert, get+update).
type TodoService struct {
	mu    sync.Mutex
	store storage.Store
}

// NewTodoService creates a new todo service
func NewTodoService(store storage.Store) *TodoService {
	return &TodoService{store: store}
}

// List returns all todos in creation order
func (s *TodoService) List() ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, nil
}

// Create stores a new todo and returns it with its assigned ID
func (s *TodoService) Create(title string, completed bool) (*models.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.AllocateID()
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		ID:        id,
		Title:     title,
		Completed: completed,
	}
	if err := s.store.Insert(todo); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"todo_id":   todo.ID,
		"completed": todo.Completed,
	}).Debug("Todo created")

	return todo, nil
}

// SetCompletion changes the completed flag of an existing todo.
// The title and ID are left untouched.
func (s *TodoService) SetCompletion(id int64, completed bool) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	todo.Completed = completed
	if err := s.store.Update(todo); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"todo_id":   id,
		"completed": completed,
	}).Debug("Todo completion updated")

	return todo, nil
}

// Delete permanently removes a todo
func (s *TodoService) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Remove(id); err != nil {
		return err
	}

	logging.Logger.WithField("todo_id", id).Debug("Todo deleted")
	return nil
}

// Count returns how many todos are currently stored
func (s *TodoService) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Count()
}
