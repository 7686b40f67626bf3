package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db, nil))
	return db
}

func createUser(t *testing.T, repo repository.UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Name " + username,
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "hash",
	}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db, nil))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := createUser(t, repo, "alice")
	require.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "alice@x.com", byName.Email)
	assert.Equal(t, "Name alice", byName.Name)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_UniqueViolations(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	createUser(t, repo, "alice")

	_, err := repo.Create(ctx, &domain.User{Name: "A", Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	_, err = repo.Create(ctx, &domain.User{Name: "A", Username: "alice2", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestTodoRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	before := time.Now().UTC().Add(-time.Second)
	first := &domain.Todo{UserID: alice.ID, Title: "buy milk", Content: "2%"}
	_, err := todos.Create(ctx, first)
	require.NoError(t, err)
	second := &domain.Todo{UserID: alice.ID, Title: "walk dog"}
	_, err = todos.Create(ctx, second)
	require.NoError(t, err)
	_, err = todos.Create(ctx, &domain.Todo{UserID: bob.ID, Title: "bob's"})
	require.NoError(t, err)

	list, err := todos.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "buy milk", list[0].Title)
	assert.Equal(t, "2%", list[0].Content)
	assert.False(t, list[0].Complete)
	assert.True(t, list[0].CreatedDate.After(before))

	require.NoError(t, todos.ToggleComplete(ctx, first.ID, alice.ID))
	got, err := todos.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Complete)

	require.NoError(t, todos.ToggleComplete(ctx, first.ID, alice.ID))
	got, err = todos.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Complete)

	// wrong owner matches no row
	assert.ErrorIs(t, todos.ToggleComplete(ctx, first.ID, bob.ID), repository.ErrNotFound)
	assert.ErrorIs(t, todos.Delete(ctx, first.ID, bob.ID), repository.ErrNotFound)

	require.NoError(t, todos.Delete(ctx, first.ID, alice.ID))
	_, err = todos.Get(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, todos.Delete(ctx, first.ID, alice.ID), repository.ErrNotFound)

	empty, err := todos.ListByUser(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	alice := createUser(t, NewUserRepository(db), "alice")
	sessions := NewSessionRepository(db)

	now := time.Now().UTC()
	live := &domain.Session{ID: "live", UserID: alice.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &domain.Session{ID: "stale", UserID: alice.ID, CreatedAt: now.Add(-3 * time.Hour), ExpiresAt: now.Add(-2 * time.Hour)}
	require.NoError(t, sessions.Create(ctx, live))
	require.NoError(t, sessions.Create(ctx, stale))

	got, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)
	assert.WithinDuration(t, live.ExpiresAt, got.ExpiresAt, time.Second)

	n, err := sessions.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = sessions.Get(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, sessions.Delete(ctx, "live"))
	_, err = sessions.Get(ctx, "live")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestTodoRepository_DBErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewTodoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO todos")).WillReturnError(errors.New("disk full"))
	_, err := repo.Create(ctx, &domain.Todo{UserID: 1, Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert todo: disk full")

	mock.ExpectQuery(`(?s)SELECT .* FROM todos\s+WHERE user_id = \?`).WithArgs(int64(1)).WillReturnError(errors.New("db down"))
	_, err = repo.ListByUser(ctx, 1)
	assert.Contains(t, err.Error(), "query todos: db down")

	mock.ExpectExec(`UPDATE todos`).WithArgs(int64(3), int64(1)).WillReturnError(errors.New("locked"))
	err = repo.ToggleComplete(ctx, 3, 1)
	assert.Contains(t, err.Error(), "toggle todo: locked")
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectExec(`DELETE FROM todos`).WithArgs(int64(3), int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 3, 1), repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DBErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errors.New("db down"))
	_, err := repo.Create(ctx, &domain.User{Username: "a", Email: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert user: db down")
	assert.NotErrorIs(t, err, repository.ErrUsernameTaken)

	mock.ExpectQuery(`FROM users\s+WHERE username = \?`).WithArgs("a").WillReturnError(errors.New("boom"))
	_, err = repo.GetByUsername(ctx, "a")
	assert.Contains(t, err.Error(), "scan user: boom")
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
