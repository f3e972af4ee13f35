package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/sourcegraph/conc/pool"
)

// CreatorSnapshot is a creator profile with all of its step data. Banking is
// nil for audiences that may not see it.
type CreatorSnapshot struct {
	Profile         onboarding.CreatorProfile
	Specializations []specialization.Specialization
	Portfolio       []portfolio.Item
	Pricing         []pricing.Package
	Availability    []availability.Slot
	Banking         *banking.Details
}

type SnapshotRepositories struct {
	Profiles        onboarding.Repository
	Specializations specialization.Repository
	Portfolio       portfolio.Repository
	Pricing         pricing.Repository
	Availability    availability.Repository
}

type snapshotLoader struct {
	repos   SnapshotRepositories
	banking *BankingService
}

// load reads every step store concurrently. The first failing read cancels
// the rest.
func (l snapshotLoader) load(ctx context.Context, profile onboarding.CreatorProfile, withBanking bool) (CreatorSnapshot, error) {
	snapshot := CreatorSnapshot{Profile: profile}
	creatorID := profile.ID

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := l.repos.Specializations.ListByCreator(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("list specializations: %w", err)
		}
		snapshot.Specializations = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := l.repos.Portfolio.ListByCreator(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("list portfolio items: %w", err)
		}
		snapshot.Portfolio = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := l.repos.Pricing.ListByCreator(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("list pricing packages: %w", err)
		}
		snapshot.Pricing = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		slots, err := l.repos.Availability.ListByCreator(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("list availability: %w", err)
		}
		snapshot.Availability = availability.Week(creatorID, slots)
		return nil
	})
	if withBanking && l.banking != nil {
		p.Go(func(ctx context.Context) error {
			details, saved, err := l.banking.maskedForCreator(ctx, creatorID)
			if err != nil {
				return err
			}
			if saved {
				snapshot.Banking = &details
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return CreatorSnapshot{}, err
	}
	return snapshot, nil
}
