package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const specializationsTable = "creator_specializations"

type SpecializationRepository struct {
	db *sqlx.DB
}

func NewSpecializationRepository(db *sqlx.DB) *SpecializationRepository {
	return &SpecializationRepository{db: db}
}

func (r *SpecializationRepository) ListByCreator(ctx context.Context, creatorID string) ([]specialization.Specialization, error) {
	query, args, err := qb.Select("creator_id", "category", "skill_level", "created_at", "updated_at").
		From(specializationsTable).
		Where(qb.Eq("creator_id", creatorID)).
		OrderBy("category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list specializations query: %w", err)
	}

	var rows []specializationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list specializations: %w", err)
	}

	out := make([]specialization.Specialization, 0, len(rows))
	for _, row := range rows {
		out = append(out, specialization.Specialization{
			CreatorID:  row.CreatorID,
			Category:   specialization.Category(row.Category),
			SkillLevel: specialization.SkillLevel(row.SkillLevel),
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return out, nil
}

// Insert keeps an existing selection untouched; a concurrent toggle that
// already inserted the row is not an error.
func (r *SpecializationRepository) Insert(ctx context.Context, item specialization.Specialization) error {
	query, args, err := qb.InsertModel(specializationsTable, specializationInsertModel{
		CreatorID:  item.CreatorID,
		Category:   string(item.Category),
		SkillLevel: string(item.SkillLevel),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert specialization query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("insert specialization: %w", err)
	}
	return nil
}

func (r *SpecializationRepository) Delete(ctx context.Context, creatorID string, category specialization.Category) (bool, error) {
	query, args, err := qb.DeleteFrom(specializationsTable).
		Where(
			qb.Eq("creator_id", creatorID),
			qb.Eq("category", string(category)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete specialization query: %w", err)
	}

	return execAffected(ctx, r.db, "delete specialization", query, args)
}

func (r *SpecializationRepository) UpdateSkillLevel(ctx context.Context, creatorID string, category specialization.Category, level specialization.SkillLevel) (bool, error) {
	query, args, err := qb.Update(specializationsTable).
		Set("skill_level", string(level)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("creator_id", creatorID),
			qb.Eq("category", string(category)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update skill level query: %w", err)
	}

	return execAffected(ctx, r.db, "update skill level", query, args)
}
