package storage

import (
	"errors"
	"sort"
	"sync"

	"todo-api/internal/models"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrDuplicateID  = errors.New("todo id already in use")
)

// Storage provides in-memory storage for todos
type Storage struct {
	mu     sync.RWMutex
	todos  map[int64]*models.Todo // maps todo ID to todo
	nextID int64
}

// NewStorage creates a new in-memory storage instance
func NewStorage() *Storage {
	return &Storage{
		todos:  make(map[int64]*models.Todo),
		nextID: 1,
	}
}

// AllocateID returns the next unused todo ID and advances the counter
func (s *Storage) AllocateID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id, nil
}

// Insert adds a todo under its ID
func (s *Storage) Insert(todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; exists {
		return ErrDuplicateID
	}

	todoCopy := *todo
	s.todos[todo.ID] = &todoCopy

	// keep nextID ahead of anything inserted with an externally chosen ID
	if todo.ID >= s.nextID {
		s.nextID = todo.ID + 1
	}
	return nil
}

// Get retrieves a todo by ID
func (s *Storage) Get(id int64) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	todoCopy := *todo
	return &todoCopy, nil
}

// Update replaces the stored state of an existing todo
func (s *Storage) Update(todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; !exists {
		return ErrTodoNotFound
	}

	todoCopy := *todo
	s.todos[todo.ID] = &todoCopy
	return nil
}

// Remove deletes a todo and returns its last state
func (s *Storage) Remove(id int64) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	delete(s.todos, id)
	return todo, nil
}

// ListAll returns every todo in creation order
func (s *Storage) ListAll() ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		result = append(result, *todo)
	}

	// IDs are handed out in increasing order, so ID order is creation order
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Count returns the number of stored todos
func (s *Storage) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.todos), nil
}
