package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

const (
	advisoryPricing = "add at least one pricing package"

	maxPackageIncludes = 20
)

type SavePackageInput struct {
	UserID        string
	ID            string
	Name          string
	DurationLabel string
	Price         int64
	Description   string
	Includes      []string
}

type PricingView struct {
	Packages   []pricing.Package
	Saved      *pricing.Package
	Advisories []string
}

type PricingService struct {
	profileRepo onboarding.Repository
	repo        pricing.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewPricingService(profileRepo onboarding.Repository, repo pricing.Repository, idGen idgen.Generator, logger *logging.Logger) *PricingService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}
	return &PricingService{
		profileRepo: profileRepo,
		repo:        repo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *PricingService) List(ctx context.Context, userID string) (PricingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.List", userAttr(userID))
	defer span.End()

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return PricingView{}, err
	}
	return s.load(ctx, profile.ID, nil)
}

// Save creates a package when input.ID is empty and updates the creator's
// existing package otherwise.
func (s *PricingService) Save(ctx context.Context, input SavePackageInput) (PricingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.Save")
	defer span.End()

	item, err := normalizePackage(input)
	if err != nil {
		return PricingView{}, err
	}

	profile, err := resolveCreator(ctx, s.profileRepo, input.UserID)
	if err != nil {
		return PricingView{}, err
	}
	item.CreatorID = profile.ID
	now := s.now().UTC()
	item.UpdatedAt = now

	if item.ID == "" {
		item.ID, err = s.idGen.NewID()
		if err != nil {
			return PricingView{}, fmt.Errorf("generate package id: %w", err)
		}
		item.CreatedAt = now
		if err := s.repo.Insert(ctx, item); err != nil {
			return PricingView{}, fmt.Errorf("insert pricing package: %w", err)
		}
	} else {
		updated, err := s.repo.Update(ctx, item)
		if err != nil {
			return PricingView{}, fmt.Errorf("update pricing package: %w", err)
		}
		if !updated {
			return PricingView{}, fmt.Errorf("%w: pricing package %s", ErrNotFound, item.ID)
		}
	}

	return s.load(ctx, profile.ID, &item)
}

func (s *PricingService) Delete(ctx context.Context, userID, packageID string) (PricingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.Delete")
	defer span.End()

	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return PricingView{}, fmt.Errorf("%w: package id is required", ErrInvalidInput)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return PricingView{}, err
	}

	deleted, err := s.repo.Delete(ctx, profile.ID, packageID)
	if err != nil {
		return PricingView{}, fmt.Errorf("delete pricing package: %w", err)
	}
	if !deleted {
		return PricingView{}, fmt.Errorf("%w: pricing package %s", ErrNotFound, packageID)
	}
	return s.load(ctx, profile.ID, nil)
}

func (s *PricingService) load(ctx context.Context, creatorID string, saved *pricing.Package) (PricingView, error) {
	items, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return PricingView{}, fmt.Errorf("list pricing packages: %w", err)
	}
	view := PricingView{Packages: items, Saved: saved, Advisories: []string{}}
	if len(items) < pricing.RecommendedPackages {
		view.Advisories = append(view.Advisories, advisoryPricing)
	}
	return view, nil
}

func normalizePackage(input SavePackageInput) (pricing.Package, error) {
	item := pricing.Package{
		ID:            strings.TrimSpace(input.ID),
		Name:          strings.TrimSpace(input.Name),
		DurationLabel: strings.TrimSpace(input.DurationLabel),
		Price:         input.Price,
		Description:   strings.TrimSpace(input.Description),
	}
	if item.Name == "" {
		return pricing.Package{}, fmt.Errorf("%w: package name is required", ErrInvalidInput)
	}
	if len([]rune(item.Name)) > maxFieldLength {
		return pricing.Package{}, fmt.Errorf("%w: package name must be at most %d characters", ErrInvalidInput, maxFieldLength)
	}
	if item.Price < 0 {
		return pricing.Package{}, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if len([]rune(item.Description)) > maxBioLength {
		return pricing.Package{}, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxBioLength)
	}

	item.Includes = make([]string, 0, len(input.Includes))
	for _, entry := range input.Includes {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			item.Includes = append(item.Includes, entry)
		}
	}
	if len(item.Includes) > maxPackageIncludes {
		return pricing.Package{}, fmt.Errorf("%w: at most %d included items", ErrInvalidInput, maxPackageIncludes)
	}
	return item, nil
}
