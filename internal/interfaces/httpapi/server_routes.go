package httpapi

import (
	"net/http"

	"github.com/riskibarqy/creator-booking/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/admin/login", handler.AdminLogin)
}

func registerCreatorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	creator := func(fn http.HandlerFunc) http.Handler {
		return RequireRole(verifier, user.RoleCreator, fn)
	}

	mux.Handle("GET /v1/creator/onboarding", creator(handler.GetOnboarding))
	mux.Handle("POST /v1/creator/onboarding/advance", creator(handler.AdvanceOnboarding))
	mux.Handle("POST /v1/creator/onboarding/retreat", creator(handler.RetreatOnboarding))
	mux.Handle("POST /v1/creator/onboarding/complete", creator(handler.CompleteOnboarding))
	mux.Handle("PUT /v1/creator/profile", creator(handler.SaveCreatorProfile))

	mux.Handle("GET /v1/creator/specializations", creator(handler.ListSpecializations))
	mux.Handle("POST /v1/creator/specializations", creator(handler.ToggleSpecialization))
	mux.Handle("PUT /v1/creator/specializations/{category}", creator(handler.SetSpecializationSkillLevel))

	mux.Handle("GET /v1/creator/portfolio", creator(handler.ListPortfolio))
	mux.Handle("POST /v1/creator/portfolio", creator(handler.UploadPortfolio))
	mux.Handle("DELETE /v1/creator/portfolio/{itemID}", creator(handler.RemovePortfolioItem))

	mux.Handle("GET /v1/creator/pricing", creator(handler.ListPricing))
	mux.Handle("PUT /v1/creator/pricing", creator(handler.SavePricingPackage))
	mux.Handle("DELETE /v1/creator/pricing/{packageID}", creator(handler.DeletePricingPackage))

	mux.Handle("GET /v1/creator/availability", creator(handler.GetAvailability))
	mux.Handle("PUT /v1/creator/availability", creator(handler.UpsertAvailability))

	mux.Handle("GET /v1/creator/banking", creator(handler.GetBanking))
	mux.Handle("PUT /v1/creator/banking", creator(handler.SaveBanking))
}

func registerInfluencerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/creators/{creatorID}", RequireRole(verifier, user.RoleInfluencer, http.HandlerFunc(handler.GetPublicCreator)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/creators", RequireRole(verifier, user.RoleAdmin, http.HandlerFunc(handler.AdminListCreators)))
	mux.Handle("GET /v1/admin/creators/{creatorID}", RequireRole(verifier, user.RoleAdmin, http.HandlerFunc(handler.AdminGetCreator)))
}
