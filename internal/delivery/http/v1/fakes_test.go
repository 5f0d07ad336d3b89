package v1

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/adanyl0v/pern-todo/internal/models"
	"github.com/adanyl0v/pern-todo/internal/services"
)

// fakeStore keeps todos and completed todos in memory and implements
// the todo services and Pinger.
type fakeStore struct {
	mu         sync.Mutex
	todos      map[int64]*string
	completed  map[int64]*string
	nextID     int64
	nextCompID int64

	err         error
	panicOnList bool
	sawDeadline bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		todos:     make(map[int64]*string),
		completed: make(map[int64]*string),
	}
}

func (s *fakeStore) Ping(context.Context) error {
	return s.err
}

func (s *fakeStore) CreateTodo(_ context.Context, description *string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	s.todos[s.nextID] = description
	return &models.Todo{ID: s.nextID, Description: description}, nil
}

func (s *fakeStore) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicOnList {
		panic("boom")
	}
	_, s.sawDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	todos := make([]*models.Todo, 0, len(s.todos))
	for id, description := range s.todos {
		todos = append(todos, &models.Todo{ID: id, Description: description})
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (s *fakeStore) GetTodoByID(_ context.Context, id int64) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	description, ok := s.todos[id]
	if !ok {
		return nil, services.ErrTodoNotFound
	}
	return &models.Todo{ID: id, Description: description}, nil
}

func (s *fakeStore) UpdateTodo(_ context.Context, id int64, description *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.todos[id]; ok {
		s.todos[id] = description
	}
	return nil
}

func (s *fakeStore) DeleteTodo(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.todos, id)
	return nil
}

func (s *fakeStore) CompleteTodo(_ context.Context, id int64) (*models.CompletedTodo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	description, ok := s.todos[id]
	if !ok {
		return nil, services.ErrTodoNotFound
	}
	s.nextCompID++
	s.completed[s.nextCompID] = description
	delete(s.todos, id)
	return &models.CompletedTodo{ID: s.nextCompID, Description: description}, nil
}

func (s *fakeStore) GetCompletedTodos(context.Context) ([]*models.CompletedTodo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	completed := make([]*models.CompletedTodo, 0, len(s.completed))
	for id, description := range s.completed {
		completed = append(completed, &models.CompletedTodo{ID: id, Description: description})
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i].ID < completed[j].ID })
	return completed, nil
}

func (s *fakeStore) DeleteCompletedTodo(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.completed, id)
	return nil
}

// fakeAuth stores plain passwords and issues "token-<user id>" tokens.
type fakeAuth struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: make(map[string]*models.User)}
}

func (a *fakeAuth) Signup(_ context.Context, params services.SignupParams) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	if _, ok := a.users[params.Username]; ok {
		return nil, services.ErrUserAlreadyExists
	}
	user := &models.User{
		ID:       int64(len(a.users) + 1),
		Username: params.Username,
		Password: params.Password,
	}
	a.users[params.Username] = user
	return user, nil
}

func (a *fakeAuth) Login(_ context.Context, params services.LoginParams) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	user, ok := a.users[params.Username]
	if !ok {
		return "", services.ErrUserNotFound
	}
	if user.Password != params.Password {
		return "", services.ErrUserPasswordMismatch
	}
	return fmt.Sprintf("token-%d", user.ID), nil
}

func (a *fakeAuth) ParseToken(token string) (*services.Claims, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(token, "token-"), 10, 64)
	if err != nil || !strings.HasPrefix(token, "token-") {
		return nil, services.ErrInvalidToken
	}
	return &services.Claims{UserID: id}, nil
}
