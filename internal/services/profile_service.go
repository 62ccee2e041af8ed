package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, username, displayName string) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, id int64, displayName string) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo, now: time.Now}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

// CreateProfile returns the existing profile when the username is taken.
func (s *profileService) CreateProfile(ctx context.Context, username, displayName string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	displayName = strings.TrimSpace(displayName)
	log.Debug("creating profile: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	profile, err := s.profileRepo.Upsert(ctx, username, displayName, s.now().UTC())
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%d", id)

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

func (s *profileService) UpdateDisplayName(ctx context.Context, id int64, displayName string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating display name: id=%d", id)

	if err := s.profileRepo.UpdateDisplayName(ctx, id, strings.TrimSpace(displayName)); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("profile", id)
		}
		log.Error("failed to update display name: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.GetProfile(ctx, id)
}

// DeleteProfile removes the learner together with all of their study data.
func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%d", id)

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("profile", id)
		}
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("deleted profile and study data: id=%d", id)
	return nil
}
