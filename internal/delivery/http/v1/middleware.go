package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/services"
)

const (
	requestIDHeader = "X-Request-ID"
	authHeader      = "Authorization"
	bearerPrefix    = "Bearer "

	requestIDCtxKey = "request_id"
	userCtxKey      = "user"
)

func newCORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		// A bare "*" does not cover Authorization, so it is listed too.
		AllowHeaders:  []string{"*", authHeader},
		ExposeHeaders: []string{requestIDHeader},
	})
}

func (h *handlerImpl) HandleCORS(c *gin.Context) {
	h.cors(c)
}

func (h *handlerImpl) HandleRecovery(c *gin.Context) {
	h.recovery(c)
}

func (h *handlerImpl) handlePanic(c *gin.Context, recovered any) {
	h.requestLogger(c).Error().
		Interface("panic", recovered).
		Msg("recovered from panic")
	abort(c, newServerError())
}

func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)

	logger := h.logger.With().
		Str("request_id", requestID).
		Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
	c.Next()
}

func (h *handlerImpl) HandleRequestLogging(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	event := h.requestLogger(c).Info()
	if status >= http.StatusInternalServerError {
		event = h.requestLogger(c).Error()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

// HandleRequestTimeout bounds every store call made while serving
// the request by the configured timeout.
func (h *handlerImpl) HandleRequestTimeout(c *gin.Context) {
	if h.requestTimeout <= 0 {
		c.Next()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// HandleJSONBody parses a JSON request body once, up front. The raw bytes
// are cached on the context so handlers bind from them with bindBody.
// Requests without a JSON body are left alone and bind to zero values.
func (h *handlerImpl) HandleJSONBody(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 ||
		c.ContentType() != binding.MIMEJSON {
		c.Next()
		return
	}

	var body map[string]any
	err := c.ShouldBindBodyWith(&body, binding.JSON)
	if err != nil && !errors.Is(err, io.EOF) {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to parse request body")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}
	if body == nil && err == nil {
		h.requestLogger(c).Error().Msg("request body is not a json object")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}
	c.Next()
}

func (h *handlerImpl) HandleVerifyToken(c *gin.Context) {
	token := strings.TrimSpace(c.GetHeader(authHeader))
	token = strings.TrimSpace(strings.TrimPrefix(token, bearerPrefix))
	if token == "" {
		h.requestLogger(c).Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(msgAccessDenied))
		return
	}

	claims, err := h.auth.ParseToken(token)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to parse token")
		abort(c, newBadRequestError(msgInvalidToken))
		return
	}

	c.Set(userCtxKey, claims)
	c.Next()
}

// bindBody decodes the body cached by HandleJSONBody into obj.
// It's a no-op when the request carried no JSON body.
func bindBody(c *gin.Context, obj any) error {
	if _, ok := c.Get(gin.BodyBytesKey); !ok {
		return nil
	}

	err := c.ShouldBindBodyWith(obj, binding.JSON)
	if err != nil && !errors.Is(err, io.EOF) {
		return errInvalidRequestBody
	}
	return nil
}

func getClaimsFromContext(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(userCtxKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}

func (h *handlerImpl) requestLogger(c *gin.Context) *zerolog.Logger {
	logger := zerolog.Ctx(c.Request.Context())
	if logger.GetLevel() == zerolog.Disabled {
		return &h.logger
	}
	return logger
}
