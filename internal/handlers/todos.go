package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"todo-api/internal/models"
	"todo-api/internal/service"
	"todo-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// TodoHandler handles todo operations
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(c *gin.Context) {
	todos, err := h.service.List()
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve todos")
		return
	}

	c.JSON(http.StatusOK, todos)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail:  "title is required and must be a non-empty string",
			Code:    "VALIDATION_ERROR",
			Details: map[string]interface{}{"error": bindErr.Error()},
		})
		return
	}

	todo, err := h.service.Create(req.Title, req.Completed)
	if err != nil {
		writeServiceError(c, err, "Failed to create todo")
		return
	}

	c.JSON(http.StatusOK, todo)
}

// UpdateTodo handles PUT /todos/:id.
// completed comes from the query string when present, otherwise from the JSON body.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	completed, ok := parseCompleted(c)
	if !ok {
		return
	}

	todo, err := h.service.SetCompletion(id, completed)
	if err != nil {
		writeServiceError(c, err, "Failed to update todo")
		return
	}

	c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeServiceError(c, err, "Failed to delete todo")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Todo deleted"})
}

// writeServiceError maps service errors onto HTTP responses
func writeServiceError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, storage.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Detail: "Todo not found",
			Code:   "TODO_NOT_FOUND",
		})
	case errors.Is(err, service.ErrTitleRequired):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail:  "title is required and must be a non-empty string",
			Code:    "VALIDATION_ERROR",
			Details: map[string]interface{}{"field": "title"},
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Detail: internalMessage,
			Code:   "INTERNAL_ERROR",
		})
	}
}

// Helper functions for path and query parameter validation

func parseTodoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail:  "id must be an integer",
			Code:    "INVALID_ID",
			Details: map[string]interface{}{"field": "id"},
		})
		return 0, false
	}
	return id, true
}

func parseCompleted(c *gin.Context) (bool, bool) {
	if raw, present := c.GetQuery("completed"); present {
		completed, err := parseBoolParam(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Detail:  "completed must be a boolean",
				Code:    "VALIDATION_ERROR",
				Details: map[string]interface{}{"field": "completed", "value": raw},
			})
			return false, false
		}
		return completed, true
	}

	var req models.UpdateTodoRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail:  "completed is required and must be a boolean",
			Code:    "VALIDATION_ERROR",
			Details: map[string]interface{}{"error": bindErr.Error()},
		})
		return false, false
	}
	return *req.Completed, true
}

// parseBoolParam accepts strconv.ParseBool spellings plus yes/no and on/off
func parseBoolParam(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}
