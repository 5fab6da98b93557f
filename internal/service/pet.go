package service

import (
	"context"
	"log/slog"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/store"
)

// PetService handles the shared virtual pet. Interactions are cosmetic
// coupling: they ride along after successful mutations elsewhere and their
// failures never affect the mutation that triggered them.
type PetService struct {
	repo   domain.PetRepository
	logger *slog.Logger
	store  *store.Store
}

// NewPetService creates a new pet service
func NewPetService(repo domain.PetRepository, st *store.Store, logger *slog.Logger) *PetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PetService{repo: repo, logger: logger, store: st}
}

// Pet returns the pet's current state
func (s *PetService) Pet(ctx context.Context) (*domain.Pet, error) {
	pet, err := s.repo.GetPet(ctx)
	if err != nil {
		s.logger.Error("failed to get pet", "error", err)
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SavePet(pet); err != nil {
			s.logger.Warn("failed to persist pet snapshot", "error", err)
		}
	}
	return pet, nil
}

// Snapshot returns the last persisted pet state
func (s *PetService) Snapshot() (*domain.Pet, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.Pet()
}

// Notify records an app activity against the pet and returns the new
// state. Callers treat a failure as a shrug.
func (s *PetService) Notify(ctx context.Context, kind domain.InteractionType) (*domain.Pet, error) {
	pet, err := s.repo.Interact(ctx, kind)
	if err != nil {
		s.logger.Debug("pet interaction failed", "kind", kind, "error", err)
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SavePet(pet); err != nil {
			s.logger.Warn("failed to persist pet snapshot", "error", err)
		}
	}
	return pet, nil
}
