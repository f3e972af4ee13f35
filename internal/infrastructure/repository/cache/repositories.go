package cache

import (
	"context"

	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	basecache "github.com/riskibarqy/creator-booking/internal/platform/cache"
)

// The decorators below cache per-creator list reads and drop the creator's
// entry on every write that goes through them. Writes from another process
// become visible once the entry expires.

type SpecializationRepository struct {
	next  specialization.Repository
	cache *basecache.Store
}

func NewSpecializationRepository(next specialization.Repository, cache *basecache.Store) *SpecializationRepository {
	return &SpecializationRepository{next: next, cache: cache}
}

func (r *SpecializationRepository) ListByCreator(ctx context.Context, creatorID string) ([]specialization.Specialization, error) {
	v, err := r.cache.GetOrLoad(ctx, specializationKey(creatorID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCreator(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		return append([]specialization.Specialization(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]specialization.Specialization)
	return append([]specialization.Specialization(nil), items...), nil
}

func (r *SpecializationRepository) Insert(ctx context.Context, item specialization.Specialization) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, specializationKey(item.CreatorID))
	return nil
}

func (r *SpecializationRepository) Delete(ctx context.Context, creatorID string, category specialization.Category) (bool, error) {
	deleted, err := r.next.Delete(ctx, creatorID, category)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, specializationKey(creatorID))
	return deleted, nil
}

func (r *SpecializationRepository) UpdateSkillLevel(ctx context.Context, creatorID string, category specialization.Category, level specialization.SkillLevel) (bool, error) {
	updated, err := r.next.UpdateSkillLevel(ctx, creatorID, category, level)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, specializationKey(creatorID))
	return updated, nil
}

func specializationKey(creatorID string) string {
	return "specialization:list:creator:" + creatorID
}

type PortfolioRepository struct {
	next  portfolio.Repository
	cache *basecache.Store
}

func NewPortfolioRepository(next portfolio.Repository, cache *basecache.Store) *PortfolioRepository {
	return &PortfolioRepository{next: next, cache: cache}
}

func (r *PortfolioRepository) ListByCreator(ctx context.Context, creatorID string) ([]portfolio.Item, error) {
	v, err := r.cache.GetOrLoad(ctx, portfolioKey(creatorID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCreator(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		return append([]portfolio.Item(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]portfolio.Item)
	return append([]portfolio.Item(nil), items...), nil
}

// GetByID is not cached; removal reads it right before deleting.
func (r *PortfolioRepository) GetByID(ctx context.Context, creatorID, itemID string) (portfolio.Item, bool, error) {
	return r.next.GetByID(ctx, creatorID, itemID)
}

func (r *PortfolioRepository) Insert(ctx context.Context, item portfolio.Item) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, portfolioKey(item.CreatorID))
	return nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, creatorID, itemID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, creatorID, itemID)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, portfolioKey(creatorID))
	return deleted, nil
}

func portfolioKey(creatorID string) string {
	return "portfolio:list:creator:" + creatorID
}

type PricingRepository struct {
	next  pricing.Repository
	cache *basecache.Store
}

func NewPricingRepository(next pricing.Repository, cache *basecache.Store) *PricingRepository {
	return &PricingRepository{next: next, cache: cache}
}

func (r *PricingRepository) ListByCreator(ctx context.Context, creatorID string) ([]pricing.Package, error) {
	v, err := r.cache.GetOrLoad(ctx, pricingKey(creatorID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCreator(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		return append([]pricing.Package(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pricing.Package)
	return append([]pricing.Package(nil), items...), nil
}

func (r *PricingRepository) Insert(ctx context.Context, item pricing.Package) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, pricingKey(item.CreatorID))
	return nil
}

func (r *PricingRepository) Update(ctx context.Context, item pricing.Package) (bool, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, pricingKey(item.CreatorID))
	return updated, nil
}

func (r *PricingRepository) Delete(ctx context.Context, creatorID, packageID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, creatorID, packageID)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, pricingKey(creatorID))
	return deleted, nil
}

func pricingKey(creatorID string) string {
	return "pricing:list:creator:" + creatorID
}

type AvailabilityRepository struct {
	next  availability.Repository
	cache *basecache.Store
}

func NewAvailabilityRepository(next availability.Repository, cache *basecache.Store) *AvailabilityRepository {
	return &AvailabilityRepository{next: next, cache: cache}
}

func (r *AvailabilityRepository) ListByCreator(ctx context.Context, creatorID string) ([]availability.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, availabilityKey(creatorID), func(ctx context.Context) (any, error) {
		slots, err := r.next.ListByCreator(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		return append([]availability.Slot(nil), slots...), nil
	})
	if err != nil {
		return nil, err
	}

	slots, _ := v.([]availability.Slot)
	return append([]availability.Slot(nil), slots...), nil
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, slot availability.Slot) error {
	if err := r.next.Upsert(ctx, slot); err != nil {
		return err
	}
	r.cache.Delete(ctx, availabilityKey(slot.CreatorID))
	return nil
}

func availabilityKey(creatorID string) string {
	return "availability:list:creator:" + creatorID
}
