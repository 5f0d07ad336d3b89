package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedTodoService_CompleteTodo(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT description\s+FROM todo\s+WHERE todo_id = \$1\s+FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"description"}).AddRow(ptr("buy milk")))
	mock.ExpectQuery(`INSERT INTO complete \(description\)`).
		WithArgs(ptr("buy milk")).
		WillReturnRows(mock.NewRows([]string{"comp_id", "description"}).
			AddRow(int64(1), ptr("buy milk")))
	mock.ExpectExec(`DELETE FROM todo\s+WHERE todo_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	completed, err := svc.CompleteTodo(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed.ID)
	assert.Equal(t, "buy milk", *completed.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedTodoService_CompleteTodo_NotFound(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT description\s+FROM todo`).
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"description"}))
	mock.ExpectRollback()

	_, err := svc.CompleteTodo(context.Background(), 5)
	require.ErrorIs(t, err, ErrTodoNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedTodoService_CompleteTodo_DeleteFailureRollsBack(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	dbErr := errors.New("lock timeout")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT description\s+FROM todo`).
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"description"}).AddRow(ptr("buy milk")))
	mock.ExpectQuery(`INSERT INTO complete`).
		WithArgs(ptr("buy milk")).
		WillReturnRows(mock.NewRows([]string{"comp_id", "description"}).
			AddRow(int64(1), ptr("buy milk")))
	mock.ExpectExec(`DELETE FROM todo`).
		WithArgs(int64(5)).
		WillReturnError(dbErr)
	mock.ExpectRollback()

	_, err := svc.CompleteTodo(context.Background(), 5)
	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedTodoService_CompleteTodo_BeginError(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	dbErr := errors.New("pool exhausted")
	mock.ExpectBegin().WillReturnError(dbErr)

	_, err := svc.CompleteTodo(context.Background(), 5)
	require.ErrorIs(t, err, dbErr)
}

func TestCompletedTodoService_GetCompletedTodos(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	mock.ExpectQuery(`SELECT comp_id,\s+description\s+FROM complete`).
		WillReturnRows(mock.NewRows([]string{"comp_id", "description"}).
			AddRow(int64(1), ptr("buy milk")))

	completed, err := svc.GetCompletedTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "buy milk", *completed[0].Description)
}

func TestCompletedTodoService_DeleteCompletedTodo(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	mock.ExpectExec(`DELETE FROM complete\s+WHERE comp_id = \$1`).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, svc.DeleteCompletedTodo(context.Background(), 8))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedTodoService_DeleteCompletedTodo_StoreError(t *testing.T) {
	mock := newMockPool(t)
	svc := NewCompletedTodoService(zerolog.Nop(), mock)

	dbErr := errors.New("db down")
	mock.ExpectExec(`DELETE FROM complete`).
		WithArgs(int64(8)).
		WillReturnError(dbErr)

	require.ErrorIs(t, svc.DeleteCompletedTodo(context.Background(), 8), dbErr)
}
