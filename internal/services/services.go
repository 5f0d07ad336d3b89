package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/pern-todo/internal/models"
)

var (
	ErrTodoNotFound         = errors.New("todo not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrInvalidToken         = errors.New("invalid token")
)

// PgxPool is the part of *pgxpool.Pool the services use.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type TodoService interface {
	// CreateTodo inserts a todo and returns it with the generated id.
	// A nil description is stored as NULL.
	CreateTodo(ctx context.Context, description *string) (*models.Todo, error)

	// GetTodos returns every todo in the store's natural order.
	GetTodos(ctx context.Context) ([]*models.Todo, error)

	// GetTodoByID returns ErrTodoNotFound if no todo has the given id.
	GetTodoByID(ctx context.Context, id int64) (*models.Todo, error)

	// UpdateTodo replaces the description. Updating a missing
	// todo is not an error and changes nothing.
	UpdateTodo(ctx context.Context, id int64, description *string) error

	// DeleteTodo removes the todo. Deleting a missing todo is not an error.
	DeleteTodo(ctx context.Context, id int64) error
}

type CompletedTodoService interface {
	// CompleteTodo moves the todo into the completed todos within
	// a single transaction and returns the completed record.
	//
	// It returns ErrTodoNotFound if the todo doesn't exist, in
	// which case nothing is inserted.
	CompleteTodo(ctx context.Context, id int64) (*models.CompletedTodo, error)

	GetCompletedTodos(ctx context.Context) ([]*models.CompletedTodo, error)

	// DeleteCompletedTodo removes the completed todo. Deleting
	// a missing one is not an error.
	DeleteCompletedTodo(ctx context.Context, id int64) error
}

type AuthService interface {
	// Signup registers a user with the given username and password.
	//
	// It returns ErrUserAlreadyExists if the username is taken,
	// either by the pre-insert lookup or by a unique violation.
	Signup(ctx context.Context, params SignupParams) (*models.User, error)

	// Login authenticates the user and returns a signed token.
	//
	// It returns ErrUserNotFound if the user doesn't exist or
	// ErrUserPasswordMismatch if the password doesn't match.
	Login(ctx context.Context, params LoginParams) (string, error)

	// ParseToken verifies the token signature and returns its claims
	// or an error wrapping ErrInvalidToken.
	ParseToken(token string) (*Claims, error)
}

type SignupParams struct {
	Username string
	Password string
}

type LoginParams struct {
	Username string
	Password string
}
