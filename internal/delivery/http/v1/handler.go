package v1

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/services"
)

type Handler interface {
	HandleRecovery(c *gin.Context)
	HandleRequestID(c *gin.Context)
	HandleRequestLogging(c *gin.Context)
	HandleCORS(c *gin.Context)
	HandleRequestTimeout(c *gin.Context)
	HandleJSONBody(c *gin.Context)
	HandleVerifyToken(c *gin.Context)

	HandleCreateTodo(c *gin.Context)
	HandleGetTodos(c *gin.Context)
	HandleGetTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)

	HandleCompleteTodo(c *gin.Context)
	HandleGetCompletedTodos(c *gin.Context)
	HandleDeleteCompletedTodo(c *gin.Context)

	HandleSignup(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleProtected(c *gin.Context)

	HandleHealth(c *gin.Context)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type handlerImpl struct {
	logger         zerolog.Logger
	pinger         Pinger
	todos          services.TodoService
	completed      services.CompletedTodoService
	auth           services.AuthService
	requestTimeout time.Duration
	cors           gin.HandlerFunc
	recovery       gin.HandlerFunc
}

func New(
	logger zerolog.Logger,
	pinger Pinger,
	todoService services.TodoService,
	completedTodoService services.CompletedTodoService,
	authService services.AuthService,
	requestTimeout time.Duration,
) Handler {
	h := &handlerImpl{
		logger:         logger,
		pinger:         pinger,
		todos:          todoService,
		completed:      completedTodoService,
		auth:           authService,
		requestTimeout: requestTimeout,
		cors:           newCORSMiddleware(),
	}
	h.recovery = gin.CustomRecoveryWithWriter(nil, h.handlePanic)
	return h
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	err := h.pinger.Ping(c.Request.Context())
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to ping postgres")
		abort(c, newAPIError(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
