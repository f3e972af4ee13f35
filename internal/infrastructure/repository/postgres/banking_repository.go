package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	qb "github.com/riskibarqy/creator-booking/internal/platform/querybuilder"
)

const bankingTable = "creator_banking_details"

// BankingRepository persists banking rows as given. Account number and
// routing code arrive already sealed.
type BankingRepository struct {
	db *sqlx.DB
}

func NewBankingRepository(db *sqlx.DB) *BankingRepository {
	return &BankingRepository{db: db}
}

func (r *BankingRepository) GetByCreator(ctx context.Context, creatorID string) (banking.Details, bool, error) {
	query, args, err := qb.Select("creator_id", "account_holder", "bank_name", "account_number_sealed", "routing_code_sealed", "payment_handle", "updated_at").
		From(bankingTable).
		Where(qb.Eq("creator_id", creatorID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return banking.Details{}, false, fmt.Errorf("build get banking details query: %w", err)
	}

	var row bankingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return banking.Details{}, false, nil
		}
		return banking.Details{}, false, fmt.Errorf("get banking details: %w", err)
	}

	return banking.Details{
		CreatorID:     row.CreatorID,
		AccountHolder: row.AccountHolder,
		BankName:      row.BankName,
		AccountNumber: row.AccountNumber,
		RoutingCode:   row.RoutingCode,
		PaymentHandle: row.PaymentHandle,
		UpdatedAt:     row.UpdatedAt,
	}, true, nil
}

func (r *BankingRepository) Upsert(ctx context.Context, details banking.Details) error {
	query, args, err := qb.UpsertModel(bankingTable, bankingInsertModel{
		CreatorID:     details.CreatorID,
		AccountHolder: details.AccountHolder,
		BankName:      details.BankName,
		AccountNumber: details.AccountNumber,
		RoutingCode:   details.RoutingCode,
		PaymentHandle: details.PaymentHandle,
	}, []string{"creator_id"}, "updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert banking details query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert banking details: %w", err)
	}
	return nil
}
