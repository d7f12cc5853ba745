package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/todo-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type todoUsecaser interface {
	Create(ctx context.Context, creatorID, text string) (*domain.Todo, error)
	List(ctx context.Context, creatorID string) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id, creatorID string) (*domain.Todo, error)
	UpdateByID(ctx context.Context, id, creatorID string, patch usecase.TodoPatch) (*domain.Todo, error)
	DeleteByID(ctx context.Context, id, creatorID string) (*domain.Todo, error)
}

type TodoHandler struct {
	todoUsecase todoUsecaser
	logger      *slog.Logger
}

func NewTodoHandler(todoUsecase todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// updateTodoRequest is the whitelist for PATCH: anything outside these two
// fields is dropped during binding and never reaches the usecase.
type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CreatorID:   t.CreatorID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.UserFrom(c)
	todo, err := h.todoUsecase.Create(c.Request.Context(), user.ID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create todo", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	user := middleware.UserFrom(c)

	todos, err := h.todoUsecase.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list todos", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
		return
	}

	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, newTodoResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"todos": out})
}

// GET /todos/:id
// A malformed id and a todo owned by someone else both read as 404.
func (h *TodoHandler) GetByID(c *gin.Context) {
	user := middleware.UserFrom(c)
	id := c.Param("id")

	todo, err := h.todoUsecase.GetByID(c.Request.Context(), id, user.ID)
	if err != nil {
		h.respondTodoError(c, "get todo", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": newTodoResponse(todo)})
}

// PATCH /todos/:id
func (h *TodoHandler) UpdateByID(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.UserFrom(c)
	id := c.Param("id")

	todo, err := h.todoUsecase.UpdateByID(c.Request.Context(), id, user.ID, usecase.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondTodoError(c, "update todo", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": newTodoResponse(todo)})
}

// DELETE /todos/:id
func (h *TodoHandler) DeleteByID(c *gin.Context) {
	user := middleware.UserFrom(c)
	id := c.Param("id")

	todo, err := h.todoUsecase.DeleteByID(c.Request.Context(), id, user.ID)
	if err != nil {
		h.respondTodoError(c, "delete todo", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": newTodoResponse(todo)})
}

func (h *TodoHandler) respondTodoError(c *gin.Context, op, todoID string, err error) {
	if errors.Is(err, domain.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "todo_id", todoID, "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
}
