package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

const (
	defaultMaxFileBytes = 50 << 20
	multipartOverhead   = 1 << 20
	multipartMemory     = 8 << 20
)

type Handler struct {
	onboardingService     *usecase.OnboardingService
	specializationService *usecase.SpecializationService
	portfolioService      *usecase.PortfolioService
	pricingService        *usecase.PricingService
	availabilityService   *usecase.AvailabilityService
	bankingService        *usecase.BankingService
	directoryService      *usecase.DirectoryService
	adminService          *usecase.AdminService
	maxUploadBytes        int64
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	onboardingService *usecase.OnboardingService,
	specializationService *usecase.SpecializationService,
	portfolioService *usecase.PortfolioService,
	pricingService *usecase.PricingService,
	availabilityService *usecase.AvailabilityService,
	bankingService *usecase.BankingService,
	directoryService *usecase.DirectoryService,
	adminService *usecase.AdminService,
	maxFileBytes int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxFileBytes <= 0 {
		maxFileBytes = defaultMaxFileBytes
	}

	return &Handler{
		onboardingService:     onboardingService,
		specializationService: specializationService,
		portfolioService:      portfolioService,
		pricingService:        pricingService,
		availabilityService:   availabilityService,
		bankingService:        bankingService,
		directoryService:      directoryService,
		adminService:          adminService,
		maxUploadBytes:        int64(portfolio.MaxItems)*maxFileBytes + multipartOverhead,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a strict JSON body and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}
