package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linkswipe/backend/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileStore is the persistence surface for submitted profiles. The only
// mutation it exposes for status is approval, so records can never move
// backward from approved.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) (string, error)
	FindByEmail(ctx context.Context, email string) ([]models.Profile, error)
	// ApproveByEmail flips the first record matching email to approved.
	// Already-approved records are re-approved as a no-op. Returns
	// ErrProfileNotFound when nothing matches.
	ApproveByEmail(ctx context.Context, email string) (*models.Profile, error)
	ApproveByID(ctx context.Context, id string) (*models.Profile, error)
	ListByStatus(ctx context.Context, status string) ([]models.Profile, error)
	DeleteByID(ctx context.Context, id string) error
}

// ProfileService is an in-memory ProfileStore used by tests and local dev
// without Mongo.
type ProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
	order    []string // insertion order, so "first match" is deterministic
}

func NewProfileService() *ProfileService {
	return &ProfileService{
		profiles: make(map[string]*models.Profile),
	}
}

func (s *ProfileService) Create(_ context.Context, p *models.Profile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Status == "" {
		p.Status = models.StatusPendingPayment
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	cp := *p
	id := cp.ID.Hex()
	s.profiles[id] = &cp
	s.order = append(s.order, id)
	return id, nil
}

func (s *ProfileService) FindByEmail(_ context.Context, email string) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Profile
	for _, id := range s.order {
		if p := s.profiles[id]; p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *ProfileService) ApproveByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		p := s.profiles[id]
		if p.Email != email {
			continue
		}
		p.Status = models.StatusApproved
		cp := *p
		return &cp, nil
	}
	return nil, ErrProfileNotFound
}

func (s *ProfileService) ApproveByID(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.profiles[id]
	if !exists {
		return nil, ErrProfileNotFound
	}
	p.Status = models.StatusApproved
	cp := *p
	return &cp, nil
}

func (s *ProfileService) ListByStatus(_ context.Context, status string) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Profile
	for _, id := range s.order {
		if p := s.profiles[id]; p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *ProfileService) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[id]; !exists {
		return ErrProfileNotFound
	}
	delete(s.profiles, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
