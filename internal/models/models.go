package models

// Todo represents a single task record
type Todo struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Completed bool   `gorm:"not null;index" json:"completed"`
}

// Sequence holds the next identifier to hand out for a named series.
// A row is never deleted, so identifiers are not reused after a todo is removed.
type Sequence struct {
	Name   string `gorm:"primaryKey;size:50"`
	NextID int64  `gorm:"not null"`
}

// CreateTodoRequest represents the request to create a new todo
type CreateTodoRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
}

// UpdateTodoRequest represents the body form of a completion update.
// There is no title field: titles cannot change after creation.
type UpdateTodoRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// MessageResponse represents a plain confirmation response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail  string                 `json:"detail"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
