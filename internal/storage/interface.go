package storage

import "todo-api/internal/models"

// Store defines the interface for item storage operations.
// Each method is atomic on its own; callers that combine several
// calls (allocate then insert, get then update) must serialize them.
type Store interface {
	AllocateID() (int64, error)
	Insert(todo *models.Todo) error
	Get(id int64) (*models.Todo, error)
	Update(todo *models.Todo) error
	Remove(id int64) (*models.Todo, error)
	ListAll() ([]models.Todo, error)
	Count() (int, error)
}
