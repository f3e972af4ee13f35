package onboarding

import "time"

// CreatorProfile is the identity-linked record that owns every piece of
// step data. ID is generated; step rows reference it instead of UserID.
type CreatorProfile struct {
	ID                  string
	UserID              string
	State               string
	City                string
	Location            string
	Bio                 string
	Languages           []string
	OnboardingStep      Step
	OnboardingCompleted bool
	DetailsRevision     int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Details is the step 1 autosave payload.
type Details struct {
	State     string
	City      string
	Location  string
	Bio       string
	Languages []string
	Revision  int64
}

type ListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
