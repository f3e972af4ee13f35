package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const availabilityTable = "creator_availability"

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) ListByCreator(ctx context.Context, creatorID string) ([]availability.Slot, error) {
	query, args, err := qb.Select(availabilityColumns...).
		From(availabilityTable).
		Where(qb.Eq("creator_id", creatorID)).
		OrderBy("day_of_week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list availability query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	out := make([]availability.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, availability.Slot{
			CreatorID: row.CreatorID,
			DayOfWeek: time.Weekday(row.DayOfWeek),
			Available: row.Available,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, slot availability.Slot) error {
	query, args, err := qb.UpsertModel(availabilityTable, availabilityInsertModel{
		CreatorID: slot.CreatorID,
		DayOfWeek: int(slot.DayOfWeek),
		Available: slot.Available,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}, []string{"creator_id", "day_of_week"}, "updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert availability query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}
