package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func (h *Handler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSpecializations")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	set, err := h.specializationService.List(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, specializationSetToDTO(set))
}

func (h *Handler) ToggleSpecialization(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSpecialization")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req toggleSpecializationRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	set, err := h.specializationService.Toggle(ctx, usecase.ToggleSpecializationInput{
		UserID:     principal.UserID,
		Category:   req.Category,
		SkillLevel: req.SkillLevel,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "toggle specialization failed", "user_id", principal.UserID, "category", req.Category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, specializationSetToDTO(set))
}

func (h *Handler) SetSpecializationSkillLevel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSpecializationSkillLevel")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setSkillLevelRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	category := r.PathValue("category")
	set, err := h.specializationService.SetSkillLevel(ctx, principal.UserID, category, req.SkillLevel)
	if err != nil {
		h.logger.WarnContext(ctx, "set skill level failed", "user_id", principal.UserID, "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, specializationSetToDTO(set))
}

func (h *Handler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPortfolio")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.portfolioService.List(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, portfolioViewToDTO(view))
}

// UploadPortfolio accepts a multipart form with one or more "files" parts.
func (h *Handler) UploadPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadPortfolio")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(ctx, w, multipartError(err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFileFromHeader(fh))
	}

	view, err := h.portfolioService.Upload(ctx, principal.UserID, files)
	if err != nil {
		h.logger.WarnContext(ctx, "portfolio upload failed", "user_id", principal.UserID, "files", len(files), "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(view.Failures) > 0 {
		h.logger.WarnContext(ctx, "portfolio upload partially failed",
			"user_id", principal.UserID,
			"created", len(view.Created),
			"failed", len(view.Failures),
		)
	}

	status := http.StatusOK
	if len(view.Created) > 0 {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, portfolioViewToDTO(view))
}

func (h *Handler) RemovePortfolioItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePortfolioItem")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	itemID := r.PathValue("itemID")
	view, err := h.portfolioService.Remove(ctx, principal.UserID, itemID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove portfolio item failed", "user_id", principal.UserID, "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, portfolioViewToDTO(view))
}

func (h *Handler) ListPricing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPricing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.pricingService.List(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pricingViewToDTO(view))
}

func (h *Handler) SavePricingPackage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePricingPackage")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req savePackageRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.pricingService.Save(ctx, usecase.SavePackageInput{
		UserID:        principal.UserID,
		ID:            req.ID,
		Name:          req.Name,
		DurationLabel: req.DurationLabel,
		Price:         req.Price,
		Description:   req.Description,
		Includes:      req.Includes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save pricing package failed", "user_id", principal.UserID, "package_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pricingViewToDTO(view))
}

func (h *Handler) DeletePricingPackage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePricingPackage")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	packageID := r.PathValue("packageID")
	view, err := h.pricingService.Delete(ctx, principal.UserID, packageID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete pricing package failed", "user_id", principal.UserID, "package_id", packageID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pricingViewToDTO(view))
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAvailability")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := h.availabilityService.Week(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO(week))
}

func (h *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertAvailability")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertAvailabilityRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	days := make([]usecase.AvailabilityInput, 0, len(req.Days))
	for _, day := range req.Days {
		days = append(days, usecase.AvailabilityInput{
			DayOfWeek: *day.DayOfWeek,
			Available: day.Available,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}

	week, err := h.availabilityService.Upsert(ctx, principal.UserID, days)
	if err != nil {
		h.logger.WarnContext(ctx, "upsert availability failed", "user_id", principal.UserID, "days", len(days), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO(week))
}

func (h *Handler) GetBanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBanking")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.bankingService.Get(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bankingToDTO(view.Details, view.Saved))
}

func (h *Handler) SaveBanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveBanking")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveBankingRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.bankingService.Save(ctx, usecase.SaveBankingInput{
		UserID:        principal.UserID,
		AccountHolder: req.AccountHolder,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		RoutingCode:   req.RoutingCode,
		PaymentHandle: req.PaymentHandle,
	})
	if err != nil {
		// Never log the submitted numbers.
		h.logger.WarnContext(ctx, "save banking details failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bankingToDTO(view.Details, view.Saved))
}

func uploadFileFromHeader(fh *multipart.FileHeader) usecase.UploadFile {
	return usecase.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
