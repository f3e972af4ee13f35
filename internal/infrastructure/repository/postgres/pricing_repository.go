package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const pricingPackagesTable = "creator_pricing_packages"

type PricingRepository struct {
	db *sqlx.DB
}

func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) ListByCreator(ctx context.Context, creatorID string) ([]pricing.Package, error) {
	query, args, err := qb.Select("id", "creator_id", "name", "duration_label", "price", "description", "includes", "created_at", "updated_at").
		From(pricingPackagesTable).
		Where(qb.Eq("creator_id", creatorID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pricing packages query: %w", err)
	}

	var rows []pricingPackageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pricing packages: %w", err)
	}

	out := make([]pricing.Package, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.Package{
			ID:            row.ID,
			CreatorID:     row.CreatorID,
			Name:          row.Name,
			DurationLabel: row.DurationLabel,
			Price:         row.Price,
			Description:   row.Description,
			Includes:      append([]string(nil), row.Includes...),
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *PricingRepository) Insert(ctx context.Context, item pricing.Package) error {
	query, args, err := qb.InsertModel(pricingPackagesTable, pricingPackageInsertModel{
		ID:            item.ID,
		CreatorID:     item.CreatorID,
		Name:          item.Name,
		DurationLabel: item.DurationLabel,
		Price:         item.Price,
		Description:   item.Description,
		Includes:      includesArray(item.Includes),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert pricing package query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pricing package: %w", err)
	}
	return nil
}

func (r *PricingRepository) Update(ctx context.Context, item pricing.Package) (bool, error) {
	query, args, err := qb.Update(pricingPackagesTable).
		Set("name", item.Name).
		Set("duration_label", item.DurationLabel).
		Set("price", item.Price).
		Set("description", item.Description).
		Set("includes", includesArray(item.Includes)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("creator_id", item.CreatorID),
			qb.Eq("id", item.ID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update pricing package query: %w", err)
	}

	return execAffected(ctx, r.db, "update pricing package", query, args)
}

func (r *PricingRepository) Delete(ctx context.Context, creatorID, packageID string) (bool, error) {
	query, args, err := qb.DeleteFrom(pricingPackagesTable).
		Where(
			qb.Eq("creator_id", creatorID),
			qb.Eq("id", packageID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete pricing package query: %w", err)
	}

	return execAffected(ctx, r.db, "delete pricing package", query, args)
}

func includesArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
