package storage

import (
	"errors"
	"fmt"

	"todo-api/internal/models"

	"gorm.io/gorm"
)

const todoSequence = "todos"

// SQLStorage implements storage on top of GORM.
// It is meant for an in-memory SQLite database, so nothing outlives the process.
type SQLStorage struct {
	db *gorm.DB
}

// NewSQLStorage creates a new GORM-backed storage instance
func NewSQLStorage(db *gorm.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

// AllocateID returns the next unused todo ID and advances the sequence row
func (s *SQLStorage) AllocateID() (int64, error) {
	var id int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := loadSequence(tx)
		if err != nil {
			return err
		}
		id = seq.NextID
		return tx.Model(&models.Sequence{}).
			Where("name = ?", todoSequence).
			Update("next_id", seq.NextID+1).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate todo id: %w", err)
	}
	return id, nil
}

// Insert adds a todo under its ID
func (s *SQLStorage) Insert(todo *models.Todo) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Todo{}).Where("id = ?", todo.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check todo id: %w", err)
		}
		if count > 0 {
			return ErrDuplicateID
		}

		if err := tx.Create(todo).Error; err != nil {
			return fmt.Errorf("failed to insert todo: %w", err)
		}

		seq, err := loadSequence(tx)
		if err != nil {
			return err
		}
		if todo.ID >= seq.NextID {
			return tx.Model(&models.Sequence{}).
				Where("name = ?", todoSequence).
				Update("next_id", todo.ID+1).Error
		}
		return nil
	})
}

// Get retrieves a todo by ID
func (s *SQLStorage) Get(id int64) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to load todo %d: %w", id, err)
	}
	return &todo, nil
}

// Update replaces the stored state of an existing todo
func (s *SQLStorage) Update(todo *models.Todo) error {
	// a map is used so that completed=false is written rather than skipped as a zero value
	result := s.db.Model(&models.Todo{}).
		Where("id = ?", todo.ID).
		Updates(map[string]interface{}{
			"title":     todo.Title,
			"completed": todo.Completed,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// Remove deletes a todo and returns its last state
func (s *SQLStorage) Remove(id int64) (*models.Todo, error) {
	var removed models.Todo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoNotFound
			}
			return err
		}
		return tx.Delete(&models.Todo{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove todo %d: %w", id, err)
	}
	return &removed, nil
}

// ListAll returns every todo in creation order
func (s *SQLStorage) ListAll() ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	if err := s.db.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Count returns the number of stored todos
func (s *SQLStorage) Count() (int, error) {
	var count int64
	if err := s.db.Model(&models.Todo{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return int(count), nil
}

// loadSequence returns the todo sequence row, creating it on first use
func loadSequence(tx *gorm.DB) (models.Sequence, error) {
	var seq models.Sequence
	err := tx.First(&seq, "name = ?", todoSequence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.Sequence{Name: todoSequence, NextID: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return seq, fmt.Errorf("failed to create todo sequence: %w", err)
		}
		return seq, nil
	}
	if err != nil {
		return seq, fmt.Errorf("failed to load todo sequence: %w", err)
	}
	return seq, nil
}
