package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	todo.CreatedDate = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (user_id, title, content, complete, created_date)
VALUES (?, ?, ?, ?, ?)`,
		todo.UserID,
		todo.Title,
		todo.Content,
		todo.Complete,
		todo.CreatedDate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, content, complete, created_date
FROM todos
WHERE id = ?`, id)

	var todo domain.Todo
	if err := scanTodo(row, &todo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, content, complete, created_date
FROM todos
WHERE user_id = ?
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var todo domain.Todo
		if err := scanTodo(rows, &todo); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) ToggleComplete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET complete = NOT complete
WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	return expectOneRow(res)
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return expectOneRow(res)
}

func scanTodo(row interface {
	Scan(dest ...any) error
}, todo *domain.Todo) error {
	return row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Content,
		&todo.Complete,
		&todo.CreatedDate,
	)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
