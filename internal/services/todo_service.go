package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/models"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxPool
}

func NewTodoService(
	logger zerolog.Logger,
	pgPool PgxPool,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, description *string) (*models.Todo, error) {
	const insertTodoQuery = `
INSERT INTO todo (description)
VALUES ($1)
RETURNING todo_id, description
`
	todo := new(models.Todo)
	err := s.pgPool.QueryRow(
		ctx,
		insertTodoQuery,
		description,
	).Scan(
		&todo.ID,
		&todo.Description,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Msg("created todo")
	return todo, nil
}

func (s *todoServiceImpl) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	const selectTodosQuery = `
SELECT todo_id,
       description
FROM todo
`
	rows, err := s.pgPool.Query(ctx, selectTodosQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todos")
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo := new(models.Todo)
		err = rows.Scan(
			&todo.ID,
			&todo.Description,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over todos: %w", err)
	}

	s.logger.Debug().
		Int("count", len(todos)).
		Msg("selected todos")
	return todos, nil
}

func (s *todoServiceImpl) GetTodoByID(ctx context.Context, id int64) (*models.Todo, error) {
	const selectTodoByIDQuery = `
SELECT todo_id,
       description
FROM todo
WHERE todo_id = $1
`
	todo := new(models.Todo)
	err := s.pgPool.QueryRow(
		ctx,
		selectTodoByIDQuery,
		id,
	).Scan(
		&todo.ID,
		&todo.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().
				Int64("todo_id", id).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to select todo by id")
		return nil, fmt.Errorf("failed to select todo: %w", err)
	}

	s.logger.Debug().
		Int64("todo_id", todo.ID).
		Msg("selected todo by id")
	return todo, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, id int64, description *string) error {
	const updateTodoQuery = `
UPDATE todo
SET description = $1
WHERE todo_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTodoQuery,
		description,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to update todo")
		return fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Info().
		Int64("todo_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("updated todo")
	return nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	const deleteTodoQuery = `
DELETE FROM todo
WHERE todo_id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTodoQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info().
		Int64("todo_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted todo")
	return nil
}
