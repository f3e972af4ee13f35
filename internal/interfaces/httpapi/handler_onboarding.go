package httpapi

import (
	"net/http"

	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.onboardingService.Start(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "start onboarding failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStateToDTO(ctx, state))
}

func (h *Handler) AdvanceOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req onboardingStepRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.onboardingService.Advance(ctx, principal.UserID, req.From)
	if err != nil {
		h.logger.WarnContext(ctx, "advance onboarding failed", "user_id", principal.UserID, "from", req.From, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStateToDTO(ctx, state))
}

func (h *Handler) RetreatOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetreatOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req onboardingStepRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.onboardingService.Retreat(ctx, principal.UserID, req.From)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStateToDTO(ctx, state))
}

func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req onboardingStepRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.onboardingService.Complete(ctx, principal.UserID, req.From)
	if err != nil {
		h.logger.WarnContext(ctx, "complete onboarding failed", "user_id", principal.UserID, "from", req.From, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStateToDTO(ctx, state))
}

func (h *Handler) SaveCreatorProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveCreatorProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveProfileRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, applied, err := h.onboardingService.SaveProfileDetails(ctx, usecase.SaveProfileDetailsInput{
		UserID:    principal.UserID,
		State:     req.State,
		City:      req.City,
		Location:  req.Location,
		Bio:       req.Bio,
		Languages: req.Languages,
		Revision:  req.Revision,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save creator profile failed", "user_id", principal.UserID, "revision", req.Revision, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveProfileResponseDTO{
		Profile: creatorProfileToDTO(ctx, profile),
		Applied: applied,
	})
}
