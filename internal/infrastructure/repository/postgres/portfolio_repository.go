package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const portfolioItemsTable = "creator_portfolio_items"

var portfolioItemColumns = []string{
	"id",
	"creator_id",
	"storage_path",
	"media_url",
	"media_type",
	"content_type",
	"position",
	"created_at",
}

type PortfolioRepository struct {
	db *sqlx.DB
}

func NewPortfolioRepository(db *sqlx.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) ListByCreator(ctx context.Context, creatorID string) ([]portfolio.Item, error) {
	query, args, err := qb.Select(portfolioItemColumns...).
		From(portfolioItemsTable).
		Where(qb.Eq("creator_id", creatorID)).
		OrderBy("position", "created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list portfolio items query: %w", err)
	}

	var rows []portfolioItemTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}

	out := make([]portfolio.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, portfolioItemFromRow(row))
	}
	return out, nil
}

func (r *PortfolioRepository) GetByID(ctx context.Context, creatorID, itemID string) (portfolio.Item, bool, error) {
	query, args, err := qb.Select(portfolioItemColumns...).
		From(portfolioItemsTable).
		Where(
			qb.Eq("creator_id", creatorID),
			qb.Eq("id", itemID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return portfolio.Item{}, false, fmt.Errorf("build get portfolio item query: %w", err)
	}

	var row portfolioItemTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return portfolio.Item{}, false, nil
		}
		return portfolio.Item{}, false, fmt.Errorf("get portfolio item: %w", err)
	}
	return portfolioItemFromRow(row), true, nil
}

func (r *PortfolioRepository) Insert(ctx context.Context, item portfolio.Item) error {
	query, args, err := qb.InsertModel(portfolioItemsTable, portfolioItemInsertModel{
		ID:          item.ID,
		CreatorID:   item.CreatorID,
		StoragePath: item.StoragePath,
		MediaURL:    item.MediaURL,
		MediaType:   string(item.MediaType),
		ContentType: item.ContentType,
		Position:    item.Position,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert portfolio item query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert portfolio item: %w", err)
	}
	return nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, creatorID, itemID string) (bool, error) {
	query, args, err := qb.DeleteFrom(portfolioItemsTable).
		Where(
			qb.Eq("creator_id", creatorID),
			qb.Eq("id", itemID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete portfolio item query: %w", err)
	}

	return execAffected(ctx, r.db, "delete portfolio item", query, args)
}

func portfolioItemFromRow(row portfolioItemTableModel) portfolio.Item {
	return portfolio.Item{
		ID:          row.ID,
		CreatorID:   row.CreatorID,
		StoragePath: row.StoragePath,
		MediaURL:    row.MediaURL,
		MediaType:   portfolio.MediaType(row.MediaType),
		ContentType: row.ContentType,
		Position:    row.Position,
		CreatedAt:   row.CreatedAt,
	}
}
