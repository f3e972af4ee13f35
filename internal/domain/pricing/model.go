package pricing

import "time"

const RecommendedPackages = 1

// Package is one sellable offer. Price is in minor currency units.
type Package struct {
	ID            string
	CreatorID     string
	Name          string
	DurationLabel string
	Price         int64
	Description   string
	Includes      []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
