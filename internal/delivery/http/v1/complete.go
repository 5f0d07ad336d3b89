package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/pern-todo/internal/services"
)

const (
	msgTodoCompleted        = "Todo marked as complete!"
	msgCompletedTodoDeleted = "Completed todo deleted successfully!"
)

// HandleCompleteTodo answers a missing todo with a server error, the
// same way it answers a failed store call.
func (h *handlerImpl) HandleCompleteTodo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abort(c, newBadRequestError(msgInvalidID))
		return
	}

	_, err = h.completed.CompleteTodo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			h.requestLogger(c).Warn().
				Int64("todo_id", id).
				Msg("cannot complete missing todo")
		}
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, msgTodoCompleted)
}

func (h *handlerImpl) HandleGetCompletedTodos(c *gin.Context) {
	completed, err := h.completed.GetCompletedTodos(c.Request.Context())
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, completed)
}

func (h *handlerImpl) HandleDeleteCompletedTodo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abort(c, newBadRequestError(msgInvalidID))
		return
	}

	err = h.completed.DeleteCompletedTodo(c.Request.Context(), id)
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, msgCompletedTodoDeleted)
}
