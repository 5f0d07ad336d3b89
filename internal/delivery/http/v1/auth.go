package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/pern-todo/internal/services"
)

const msgUserCreated = "User created successfully"

// Fields are pointers so an absent field can be told apart from an empty one.
type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (h *handlerImpl) bindCredentials(c *gin.Context) (username, password string, ok bool) {
	var req credentialsRequest
	err := bindBody(c, &req)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return "", "", false
	}

	if req.Username == nil || req.Password == nil {
		h.requestLogger(c).Error().Msg("username and password are required")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return "", "", false
	}
	return *req.Username, *req.Password, true
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	username, password, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	_, err := h.auth.Signup(c.Request.Context(), services.SignupParams{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(msgUserAlreadyExists))
		default:
			abort(c, newServerError())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserCreated})
}

// HandleLogin gives the same answer for an unknown user and a wrong password.
func (h *handlerImpl) HandleLogin(c *gin.Context) {
	username, password, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), services.LoginParams{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newUnauthorizedError(msgInvalidCredentials))
		default:
			abort(c, newServerError())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *handlerImpl) HandleProtected(c *gin.Context) {
	claims, ok := getClaimsFromContext(c)
	if !ok {
		h.requestLogger(c).Error().Msg("no claims found in context")
		abort(c, newUnauthorizedError(msgAccessDenied))
		return
	}
	c.JSON(http.StatusOK, claims)
}
