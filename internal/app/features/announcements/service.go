// internal/app/features/announcements/service.go
package announcements

import (
	"context"
	"errors"

	"github.com/dalemusser/announcehub/internal/domain/models"
)

// Errors returned by Service. Handlers map them to HTTP statuses.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidInput    = errors.New("invalid input")
)

// InputError carries the user-facing reason for an ErrInvalidInput.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return "invalid input: " + e.Detail }

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// Store is the persistence the service needs.
type Store interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, in models.AnnouncementInput) (models.Announcement, error)
	Update(ctx context.Context, id string, in models.AnnouncementInput) error
	Delete(ctx context.Context, id string) error
}

// Service applies identity and validation rules in front of a Store.
// An empty identity means the caller is anonymous.
type Service struct {
	store Store
}

// NewService wraps store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every announcement, including expired ones.
func (s *Service) List(ctx context.Context) ([]models.Announcement, error) {
	return s.store.List(ctx)
}

// Create stores a new announcement. expiration_date and message are required.
func (s *Service) Create(ctx context.Context, in models.AnnouncementInput, identity string) (models.Announcement, error) {
	if identity == "" {
		return models.Announcement{}, ErrUnauthenticated
	}
	if !in.ExpirationDate.HasValue() {
		return models.Announcement{}, &InputError{Detail: "Expiration date required"}
	}
	if !in.Message.HasValue() {
		return models.Announcement{}, &InputError{Detail: "Message required"}
	}
	return s.store.Create(ctx, in)
}

// Update merges the supplied fields into the announcement with id and
// echoes them back with the id. A missing id is not an error.
func (s *Service) Update(ctx context.Context, id string, in models.AnnouncementInput, identity string) (map[string]any, error) {
	if identity == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.store.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return in.Echo(id), nil
}

// Delete removes the announcement with id. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id, identity string) error {
	if identity == "" {
		return ErrUnauthenticated
	}
	return s.store.Delete(ctx, id)
}
