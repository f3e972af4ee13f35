package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

type onboardingStepRequest struct {
	From int `json:"from" validate:"required,min=1,max=6"`
}

type saveProfileRequest struct {
	State     string   `json:"state" validate:"max=120"`
	City      string   `json:"city" validate:"max=120"`
	Location  string   `json:"location" validate:"max=120"`
	Bio       string   `json:"bio" validate:"max=2000"`
	Languages []string `json:"languages" validate:"max=10,dive,max=60"`
	Revision  int64    `json:"revision" validate:"required,min=1"`
}

type toggleSpecializationRequest struct {
	Category   string `json:"category" validate:"required"`
	SkillLevel string `json:"skill_level"`
}

type setSkillLevelRequest struct {
	SkillLevel string `json:"skill_level" validate:"required"`
}

type savePackageRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" validate:"required,max=120"`
	DurationLabel string   `json:"duration_label" validate:"max=120"`
	Price         int64    `json:"price" validate:"min=0"`
	Description   string   `json:"description" validate:"max=2000"`
	Includes      []string `json:"includes" validate:"max=20,dive,max=200"`
}

type upsertAvailabilityRequest struct {
	Days []availabilityDayRequest `json:"days" validate:"required,min=1,max=7,dive"`
}

type availabilityDayRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type saveBankingRequest struct {
	AccountHolder string `json:"account_holder" validate:"max=120"`
	BankName      string `json:"bank_name" validate:"max=120"`
	AccountNumber string `json:"account_number" validate:"max=64"`
	RoutingCode   string `json:"routing_code" validate:"max=64"`
	PaymentHandle string `json:"payment_handle" validate:"max=120"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=256"`
}

type creatorProfileDTO struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id,omitempty"`
	State               string   `json:"state"`
	City                string   `json:"city"`
	Location            string   `json:"location"`
	Bio                 string   `json:"bio"`
	Languages           []string `json:"languages"`
	OnboardingStep      int      `json:"onboarding_step"`
	OnboardingCompleted bool     `json:"onboarding_completed"`
	DetailsRevision     int64    `json:"details_revision,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type onboardingStateDTO struct {
	Profile      creatorProfileDTO `json:"profile"`
	View         string            `json:"view"`
	Step         int               `json:"step"`
	StepName     string            `json:"step_name"`
	FurthestStep int               `json:"furthest_step"`
	TotalSteps   int               `json:"total_steps"`
	Completed    bool              `json:"completed"`
	CanRetreat   bool              `json:"can_retreat"`
	CanAdvance   bool              `json:"can_advance"`
	CanComplete  bool              `json:"can_complete"`
}

type saveProfileResponseDTO struct {
	Profile creatorProfileDTO `json:"profile"`
	Applied bool              `json:"applied"`
}

type specializationDTO struct {
	Category   string `json:"category"`
	SkillLevel string `json:"skill_level"`
}

type specializationSetDTO struct {
	Items       []specializationDTO `json:"items"`
	Categories  []string            `json:"categories"`
	SkillLevels []string            `json:"skill_levels"`
	Advisories  []string            `json:"advisories,omitempty"`
}

type portfolioItemDTO struct {
	ID          string `json:"id"`
	MediaURL    string `json:"media_url"`
	MediaType   string `json:"media_type"`
	ContentType string `json:"content_type"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
}

type uploadFailureDTO struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type portfolioViewDTO struct {
	Items            []portfolioItemDTO `json:"items"`
	Created          []portfolioItemDTO `json:"created,omitempty"`
	Failures         []uploadFailureDTO `json:"failures,omitempty"`
	MaxItems         int                `json:"max_items"`
	RecommendedItems int                `json:"recommended_items"`
	Advisories       []string           `json:"advisories,omitempty"`
}

type pricingPackageDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	DurationLabel string   `json:"duration_label"`
	Price         int64    `json:"price"`
	Description   string   `json:"description"`
	Includes      []string `json:"includes"`
}

type pricingViewDTO struct {
	Packages   []pricingPackageDTO `json:"packages"`
	Saved      *pricingPackageDTO  `json:"saved,omitempty"`
	Advisories []string            `json:"advisories,omitempty"`
}

type availabilitySlotDTO struct {
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type bankingDTO struct {
	AccountHolder string `json:"account_holder"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	RoutingCode   string `json:"routing_code"`
	PaymentHandle string `json:"payment_handle"`
	Saved         bool   `json:"saved"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

type creatorSnapshotDTO struct {
	Profile         creatorProfileDTO     `json:"profile"`
	Specializations []specializationDTO   `json:"specializations"`
	Portfolio       []portfolioItemDTO    `json:"portfolio"`
	Pricing         []pricingPackageDTO   `json:"pricing"`
	Availability    []availabilitySlotDTO `json:"availability"`
	Banking         *bankingDTO           `json:"banking,omitempty"`
}

type creatorListDTO struct {
	Items  []creatorProfileDTO `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

type adminSessionDTO struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt string `json:"expires_at"`
}

func creatorProfileToDTO(ctx context.Context, v onboarding.CreatorProfile) creatorProfileDTO {
	_, span := startSpan(ctx, "httpapi.creatorProfileToDTO")
	defer span.End()

	languages := v.Languages
	if languages == nil {
		languages = []string{}
	}
	return creatorProfileDTO{
		ID:                  v.ID,
		UserID:              v.UserID,
		State:               v.State,
		City:                v.City,
		Location:            v.Location,
		Bio:                 v.Bio,
		Languages:           languages,
		OnboardingStep:      int(v.OnboardingStep),
		OnboardingCompleted: v.OnboardingCompleted,
		DetailsRevision:     v.DetailsRevision,
		CreatedAt:           formatTime(v.CreatedAt),
		UpdatedAt:           formatTime(v.UpdatedAt),
	}
}

func onboardingStateToDTO(ctx context.Context, v usecase.OnboardingState) onboardingStateDTO {
	seq := v.Sequencer
	return onboardingStateDTO{
		Profile:      creatorProfileToDTO(ctx, v.Profile),
		View:         v.View,
		Step:         int(seq.Current),
		StepName:     seq.Current.String(),
		FurthestStep: int(seq.Furthest),
		TotalSteps:   int(onboarding.LastStep),
		Completed:    seq.Completed || v.Profile.OnboardingCompleted,
		CanRetreat:   !seq.Completed && seq.Current > onboarding.FirstStep,
		CanAdvance:   !seq.Completed && seq.Current < onboarding.LastStep,
		CanComplete:  !seq.Completed && seq.Current == onboarding.LastStep,
	}
}

func specializationSetToDTO(v usecase.SpecializationSet) specializationSetDTO {
	categories := specialization.Categories()
	out := specializationSetDTO{
		Items:       specializationsToDTO(v.Items),
		Categories:  make([]string, 0, len(categories)),
		SkillLevels: []string{string(specialization.SkillBeginner), string(specialization.SkillIntermediate), string(specialization.SkillExpert)},
		Advisories:  v.Advisories,
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, string(c))
	}
	return out
}

func specializationsToDTO(items []specialization.Specialization) []specializationDTO {
	out := make([]specializationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, specializationDTO{
			Category:   string(item.Category),
			SkillLevel: string(item.SkillLevel),
		})
	}
	return out
}

func portfolioViewToDTO(v usecase.PortfolioView) portfolioViewDTO {
	out := portfolioViewDTO{
		Items:            portfolioItemsToDTO(v.Items),
		MaxItems:         portfolio.MaxItems,
		RecommendedItems: portfolio.RecommendedItems,
		Advisories:       v.Advisories,
	}
	if len(v.Created) > 0 {
		out.Created = portfolioItemsToDTO(v.Created)
	}
	for _, f := range v.Failures {
		out.Failures = append(out.Failures, uploadFailureDTO{Index: f.Index, Name: f.Name, Reason: f.Reason})
	}
	return out
}

func portfolioItemsToDTO(items []portfolio.Item) []portfolioItemDTO {
	out := make([]portfolioItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, portfolioItemDTO{
			ID:          item.ID,
			MediaURL:    item.MediaURL,
			MediaType:   string(item.MediaType),
			ContentType: item.ContentType,
			Position:    item.Position,
			CreatedAt:   formatTime(item.CreatedAt),
		})
	}
	return out
}

func pricingViewToDTO(v usecase.PricingView) pricingViewDTO {
	out := pricingViewDTO{
		Packages:   pricingPackagesToDTO(v.Packages),
		Advisories: v.Advisories,
	}
	if v.Saved != nil {
		saved := pricingPackageToDTO(*v.Saved)
		out.Saved = &saved
	}
	return out
}

func pricingPackagesToDTO(items []pricing.Package) []pricingPackageDTO {
	out := make([]pricingPackageDTO, 0, len(items))
	for _, item := range items {
		out = append(out, pricingPackageToDTO(item))
	}
	return out
}

func pricingPackageToDTO(v pricing.Package) pricingPackageDTO {
	includes := v.Includes
	if includes == nil {
		includes = []string{}
	}
	return pricingPackageDTO{
		ID:            v.ID,
		Name:          v.Name,
		DurationLabel: v.DurationLabel,
		Price:         v.Price,
		Description:   v.Description,
		Includes:      includes,
	}
}

func availabilityToDTO(slots []availability.Slot) []availabilitySlotDTO {
	out := make([]availabilitySlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, availabilitySlotDTO{
			DayOfWeek: int(slot.DayOfWeek),
			DayName:   slot.DayOfWeek.String(),
			Available: slot.Available,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return out
}

func bankingToDTO(v banking.Details, saved bool) bankingDTO {
	return bankingDTO{
		AccountHolder: v.AccountHolder,
		BankName:      v.BankName,
		AccountNumber: v.AccountNumber,
		RoutingCode:   v.RoutingCode,
		PaymentHandle: v.PaymentHandle,
		Saved:         saved,
		UpdatedAt:     formatTime(v.UpdatedAt),
	}
}

// snapshotToDTO renders a creator snapshot. Public snapshots drop the owning
// user id and the autosave revision.
func snapshotToDTO(ctx context.Context, v usecase.CreatorSnapshot, public bool) creatorSnapshotDTO {
	profile := creatorProfileToDTO(ctx, v.Profile)
	if public {
		profile.UserID = ""
		profile.DetailsRevision = 0
	}

	out := creatorSnapshotDTO{
		Profile:         profile,
		Specializations: specializationsToDTO(v.Specializations),
		Portfolio:       portfolioItemsToDTO(v.Portfolio),
		Pricing:         pricingPackagesToDTO(v.Pricing),
		Availability:    availabilityToDTO(v.Availability),
	}
	if v.Banking != nil && !public {
		details := bankingToDTO(*v.Banking, true)
		out.Banking = &details
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
