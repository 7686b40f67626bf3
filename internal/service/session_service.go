package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

// ErrNoSession is returned when a session id is unknown or has expired.
var ErrNoSession = errors.New("no valid session")

// SessionService issues and resolves server-side login sessions.
type SessionService interface {
	Start(ctx context.Context, userID int64) (*domain.Session, error)
	Resolve(ctx context.Context, id string) (*domain.Session, error)
	End(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, userID int64) (*domain.Session, error) {
	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Resolve(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, id)
		return nil, ErrNoSession
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
