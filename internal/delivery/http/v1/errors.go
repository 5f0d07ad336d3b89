package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response bodies are bare JSON strings, which is what existing clients
// of this API expect.
const (
	msgServerError        = "Server Error"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid id"
	msgUserAlreadyExists  = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgAccessDenied       = "Access Denied"
	msgInvalidToken       = "Invalid Token"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidID          = errors.New("invalid id")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err.Message)
}

func newServerError() apiError {
	return newAPIError(http.StatusInternalServerError, msgServerError)
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}
