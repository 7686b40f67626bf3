package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

var (
	// ErrTodoNotFound is returned when no todo has the requested id.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrTodoForbidden is returned when the todo belongs to another user.
	ErrTodoForbidden = errors.New("todo belongs to another user")
	ErrTitleTooLong   = errors.New("title too long")
	ErrContentTooLong = errors.New("content too long")
)

// TodoService scopes every todo operation to its owner.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Add(ctx context.Context, ownerID int64, title, content string) (*domain.Todo, error)
	ToggleComplete(ctx context.Context, ownerID, id int64) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Detail(ctx context.Context, ownerID, id int64) (*domain.Todo, error)
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, ownerID)
}

func (s *todoService) Add(ctx context.Context, ownerID int64, title, content string) (*domain.Todo, error) {
	if utf8.RuneCountInString(title) > domain.TodoTitleMaxLen {
		return nil, ErrTitleTooLong
	}
	if utf8.RuneCountInString(content) > domain.TodoContentMaxLen {
		return nil, ErrContentTooLong
	}

	todo := &domain.Todo{
		UserID:   ownerID,
		Title:    title,
		Content:  content,
		Complete: false,
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) ToggleComplete(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	if err := s.todos.ToggleComplete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// deleted between the ownership check and the update
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return s.owned(ctx, ownerID, id)
}

func (s *todoService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.todos.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}
	return nil
}

func (s *todoService) Detail(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *todoService) owned(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if todo.UserID != ownerID {
		return nil, ErrTodoForbidden
	}
	return todo, nil
}
