package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikeodnis/core-service/internal/domain/entity"
	repo "github.com/mikeodnis/core-service/internal/domain/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
)

const publishTimeout = 3 * time.Second

// User lifecycle event types, used as AMQP routing keys.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is the payload published after a successful write.
type UserEvent struct {
	Type       string       `json:"type"`
	UserID     string       `json:"user_id"`
	User       *entity.User `json:"user,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// EventPublisher delivers user events downstream.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, body any) error
}

type noopPublisher struct{}

func (noopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type CreateUserInput struct {
	Email string
	Name  string
}

type Service struct {
	Repo      repo.UserRepository
	Publisher EventPublisher
	Logger    *logrus.Logger
}

// NewService wires the user use cases. A nil publisher disables events.
func NewService(userRepo repo.UserRepository, publisher EventPublisher, logger *logrus.Logger) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{Repo: userRepo, Publisher: publisher, Logger: logger}
}

// List returns every user, newest first. The result is never nil.
func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	u, err := s.Repo.Create(ctx, in.Email, in.Name)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.publish(ctx, EventUserCreated, u.ID, u)
	return u, nil
}

// Update applies changes to the user's mutable fields. Omitted fields keep
// their stored values; email is never part of the change set.
func (s *Service) Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error) {
	u, err := s.Repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !changes.Empty() {
		s.publish(ctx, EventUserUpdated, u.ID, u)
	}
	return u, nil
}

// Delete removes the user if present. Deleting a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		s.Logger.WithField("user_id", id).Debug("delete matched no rows")
		return nil
	}
	s.publish(ctx, EventUserDeleted, id, nil)
	return nil
}

// publish is best effort: failures are logged and never surface to the caller.
func (s *Service) publish(ctx context.Context, eventType, userID string, u *entity.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := UserEvent{Type: eventType, UserID: userID, User: u, OccurredAt: time.Now().UTC()}
	if err := s.Publisher.PublishJSON(ctx, eventType, ev); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"event": eventType, "user_id": userID}).Warn("publish user event failed")
	}
}
