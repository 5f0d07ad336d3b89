package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/pern-todo/internal/services"
)

const (
	msgTodoUpdated = "Todo was updated!"
	msgTodoDeleted = "Todo was deleted!"
)

type todoRequest struct {
	Description *string `json:"description"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	var req todoRequest
	err := bindBody(c, &req)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	todo, err := h.todos.CreateTodo(c.Request.Context(), req.Description)
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *handlerImpl) HandleGetTodos(c *gin.Context) {
	todos, err := h.todos.GetTodos(c.Request.Context())
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, todos)
}

// HandleGetTodo answers a missing todo with 200 and a JSON null.
func (h *handlerImpl) HandleGetTodo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abort(c, newBadRequestError(msgInvalidID))
		return
	}

	todo, err := h.todos.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abort(c, newBadRequestError(msgInvalidID))
		return
	}

	var req todoRequest
	err = bindBody(c, &req)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	err = h.todos.UpdateTodo(c.Request.Context(), id, req.Description)
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, msgTodoUpdated)
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		abort(c, newBadRequestError(msgInvalidID))
		return
	}

	err = h.todos.DeleteTodo(c.Request.Context(), id)
	if err != nil {
		abort(c, newServerError())
		return
	}
	c.JSON(http.StatusOK, msgTodoDeleted)
}
