package postgres

import (
	"time"

	"github.com/lib/pq"
)

type creatorProfileTableModel struct {
	ID                  string         `db:"id"`
	UserID              string         `db:"user_id"`
	State               string         `db:"state"`
	City                string         `db:"city"`
	Location            string         `db:"location"`
	Bio                 string         `db:"bio"`
	Languages           pq.StringArray `db:"languages"`
	OnboardingStep      int            `db:"onboarding_step"`
	OnboardingCompleted bool           `db:"onboarding_completed"`
	DetailsRevision     int64          `db:"details_revision"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type creatorProfileInsertModel struct {
	ID             string `db:"id"`
	UserID         string `db:"user_id"`
	OnboardingStep int    `db:"onboarding_step"`
}

var creatorProfileColumns = []string{
	"id",
	"user_id",
	"state",
	"city",
	"location",
	"bio",
	"languages",
	"onboarding_step",
	"onboarding_completed",
	"details_revision",
	"created_at",
	"updated_at",
}

type specializationTableModel struct {
	CreatorID  string    `db:"creator_id"`
	Category   string    `db:"category"`
	SkillLevel string    `db:"skill_level"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type specializationInsertModel struct {
	CreatorID  string `db:"creator_id"`
	Category   string `db:"category"`
	SkillLevel string `db:"skill_level"`
}

type portfolioItemTableModel struct {
	ID          string    `db:"id"`
	CreatorID   string    `db:"creator_id"`
	StoragePath string    `db:"storage_path"`
	MediaURL    string    `db:"media_url"`
	MediaType   string    `db:"media_type"`
	ContentType string    `db:"content_type"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

type portfolioItemInsertModel struct {
	ID          string `db:"id"`
	CreatorID   string `db:"creator_id"`
	StoragePath string `db:"storage_path"`
	MediaURL    string `db:"media_url"`
	MediaType   string `db:"media_type"`
	ContentType string `db:"content_type"`
	Position    int    `db:"position"`
}

type pricingPackageTableModel struct {
	ID            string         `db:"id"`
	CreatorID     string         `db:"creator_id"`
	Name          string         `db:"name"`
	DurationLabel string         `db:"duration_label"`
	Price         int64          `db:"price"`
	Description   string         `db:"description"`
	Includes      pq.StringArray `db:"includes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type pricingPackageInsertModel struct {
	ID            string         `db:"id"`
	CreatorID     string         `db:"creator_id"`
	Name          string         `db:"name"`
	DurationLabel string         `db:"duration_label"`
	Price         int64          `db:"price"`
	Description   string         `db:"description"`
	Includes      pq.StringArray `db:"includes"`
}

type availabilityTableModel struct {
	CreatorID string    `db:"creator_id"`
	DayOfWeek int       `db:"day_of_week"`
	Available bool      `db:"available"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	UpdatedAt time.Time `db:"updated_at"`
}

type availabilityInsertModel struct {
	CreatorID string `db:"creator_id"`
	DayOfWeek int    `db:"day_of_week"`
	Available bool   `db:"available"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

// TIME columns are formatted in SQL so they scan as HH:MM strings.
var availabilityColumns = []string{
	"creator_id",
	"day_of_week",
	"available",
	"to_char(start_time, 'HH24:MI') AS start_time",
	"to_char(end_time, 'HH24:MI') AS end_time",
	"updated_at",
}

type bankingTableModel struct {
	CreatorID     string    `db:"creator_id"`
	AccountHolder string    `db:"account_holder"`
	BankName      string    `db:"bank_name"`
	AccountNumber string    `db:"account_number_sealed"`
	RoutingCode   string    `db:"routing_code_sealed"`
	PaymentHandle string    `db:"payment_handle"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type bankingInsertModel struct {
	CreatorID     string `db:"creator_id"`
	AccountHolder string `db:"account_holder"`
	BankName      string `db:"bank_name"`
	AccountNumber string `db:"account_number_sealed"`
	RoutingCode   string `db:"routing_code_sealed"`
	PaymentHandle string `db:"payment_handle"`
}
