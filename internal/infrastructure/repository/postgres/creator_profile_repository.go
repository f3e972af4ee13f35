package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const creatorProfilesTable = "creator_profiles"

type CreatorProfileRepository struct {
	db *sqlx.DB
}

func NewCreatorProfileRepository(db *sqlx.DB) *CreatorProfileRepository {
	return &CreatorProfileRepository{db: db}
}

func (r *CreatorProfileRepository) GetByUserID(ctx context.Context, userID string) (onboarding.CreatorProfile, bool, error) {
	return r.getOne(ctx, qb.Eq("user_id", userID))
}

func (r *CreatorProfileRepository) GetByID(ctx context.Context, id string) (onboarding.CreatorProfile, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *CreatorProfileRepository) getOne(ctx context.Context, cond qb.Condition) (onboarding.CreatorProfile, bool, error) {
	query, args, err := qb.Select(creatorProfileColumns...).
		From(creatorProfilesTable).
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return onboarding.CreatorProfile{}, false, fmt.Errorf("build get creator profile query: %w", err)
	}

	var row creatorProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return onboarding.CreatorProfile{}, false, nil
		}
		return onboarding.CreatorProfile{}, false, fmt.Errorf("get creator profile: %w", err)
	}

	return creatorProfileFromRow(row), true, nil
}

func (r *CreatorProfileRepository) CreateIfAbsent(ctx context.Context, profile onboarding.CreatorProfile) error {
	insertModel := creatorProfileInsertModel{
		ID:             profile.ID,
		UserID:         profile.UserID,
		OnboardingStep: int(onboarding.ClampStep(int(profile.OnboardingStep))),
	}

	query, args, err := qb.InsertModel(creatorProfilesTable, insertModel, `ON CONFLICT (user_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build create creator profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create creator profile: %w", err)
	}
	return nil
}

func (r *CreatorProfileRepository) RaiseStep(ctx context.Context, id string, step onboarding.Step) (bool, error) {
	query, args, err := qb.Update(creatorProfilesTable).
		SetExpr("onboarding_step", "GREATEST(onboarding_step, ?)", int(step)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("onboarding_completed", false),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build raise onboarding step query: %w", err)
	}

	return execAffected(ctx, r.db, "raise onboarding step", query, args)
}

func (r *CreatorProfileRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update(creatorProfilesTable).
		Set("onboarding_completed", true).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("onboarding_completed", false),
			qb.Expr("onboarding_step >= ?", int(onboarding.LastStep)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark onboarding completed query: %w", err)
	}

	return execAffected(ctx, r.db, "mark onboarding completed", query, args)
}

func (r *CreatorProfileRepository) UpdateDetails(ctx context.Context, id string, details onboarding.Details) (bool, error) {
	languages := details.Languages
	if languages == nil {
		languages = []string{}
	}

	query, args, err := qb.Update(creatorProfilesTable).
		Set("state", details.State).
		Set("city", details.City).
		Set("location", details.Location).
		Set("bio", details.Bio).
		Set("languages", pq.StringArray(languages)).
		Set("details_revision", details.Revision).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Expr("details_revision < ?", details.Revision),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update creator details query: %w", err)
	}

	return execAffected(ctx, r.db, "update creator details", query, args)
}

func (r *CreatorProfileRepository) List(ctx context.Context, filter onboarding.ListFilter) ([]onboarding.CreatorProfile, error) {
	builder := qb.Select(creatorProfileColumns...).
		From(creatorProfilesTable).
		OrderBy("created_at DESC", "id").
		Limit(filter.Limit).
		Offset(filter.Offset)
	if filter.Completed != nil {
		builder = builder.Where(qb.Eq("onboarding_completed", *filter.Completed))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list creator profiles query: %w", err)
	}

	var rows []creatorProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list creator profiles: %w", err)
	}

	out := make([]onboarding.CreatorProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, creatorProfileFromRow(row))
	}
	return out, nil
}

func creatorProfileFromRow(row creatorProfileTableModel) onboarding.CreatorProfile {
	return onboarding.CreatorProfile{
		ID:                  row.ID,
		UserID:              row.UserID,
		State:               row.State,
		City:                row.City,
		Location:            row.Location,
		Bio:                 row.Bio,
		Languages:           append([]string(nil), row.Languages...),
		OnboardingStep:      onboarding.ClampStep(row.OnboardingStep),
		OnboardingCompleted: row.OnboardingCompleted,
		DetailsRevision:     row.DetailsRevision,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
