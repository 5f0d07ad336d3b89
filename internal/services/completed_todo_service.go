package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/models"
)

type completedTodoServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewCompletedTodoService(
	logger zerolog.Logger,
	pgPool PgxPool,
) CompletedTodoService {
	return &completedTodoServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *completedTodoServiceImpl) CompleteTodo(ctx context.Context, id int64) (*models.CompletedTodo, error) {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectTodoForUpdateQuery = `
SELECT description
FROM todo
WHERE todo_id = $1
FOR UPDATE
`
	var description *string
	err = tx.QueryRow(
		ctx,
		selectTodoForUpdateQuery,
		id,
	).Scan(&description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("todo_id", id).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to select todo")
		return nil, fmt.Errorf("failed to select todo: %w", err)
	}

	const insertCompletedTodoQuery = `
INSERT INTO complete (description)
VALUES ($1)
RETURNING comp_id, description
`
	completed := new(models.CompletedTodo)
	err = tx.QueryRow(
		ctx,
		insertCompletedTodoQuery,
		description,
	).Scan(
		&completed.ID,
		&completed.Description,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to insert completed todo")
		return nil, fmt.Errorf("failed to insert completed todo: %w", err)
	}
	s.logger.Debug().
		Int64("comp_id", completed.ID).
		Msg("inserted completed todo")

	const deleteTodoQuery = `
DELETE FROM todo
WHERE todo_id = $1
`
	_, err = tx.Exec(
		ctx,
		deleteTodoQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int64("todo_id", id).
		Int64("comp_id", completed.ID).
		Msg("completed todo")
	return completed, nil
}

func (s *completedTodoServiceImpl) GetCompletedTodos(ctx context.Context) ([]*models.CompletedTodo, error) {
	const selectCompletedTodosQuery = `
SELECT comp_id,
       description
FROM complete
`
	rows, err := s.pgPool.Query(ctx, selectCompletedTodosQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select completed todos")
		return nil, fmt.Errorf("failed to select completed todos: %w", err)
	}
	defer rows.Close()

	completed := make([]*models.CompletedTodo, 0)
	for rows.Next() {
		todo := new(models.CompletedTodo)
		err = rows.Scan(
			&todo.ID,
			&todo.Description,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan completed todo")
			return nil, fmt.Errorf("failed to scan completed todo: %w", err)
		}
		completed = append(completed, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over completed todos: %w", err)
	}

	s.logger.Debug().
		Int("count", len(completed)).
		Msg("selected completed todos")
	return completed, nil
}

func (s *completedTodoServiceImpl) DeleteCompletedTodo(ctx context.Context, id int64) error {
	const deleteCompletedTodoQuery = `
DELETE FROM complete
WHERE comp_id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteCompletedTodoQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("comp_id", id).
			Msg("failed to delete completed todo")
		return fmt.Errorf("failed to delete completed todo: %w", err)
	}

	s.logger.Info().
		Int64("comp_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted completed todo")
	return nil
}
