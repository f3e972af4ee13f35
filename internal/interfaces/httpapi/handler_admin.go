package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogin")
	defer span.End()

	var req adminLoginRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.adminService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login failed",
			"client_ip", clientIP(r),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminSessionDTO{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) AdminListCreators(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListCreators")
	defer span.End()

	input, err := parseListCreatorsQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.adminService.ListCreators(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "admin list creators failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]creatorProfileDTO, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, creatorProfileToDTO(ctx, p))
	}
	writeSuccess(ctx, w, http.StatusOK, creatorListDTO{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *Handler) AdminGetCreator(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGetCreator")
	defer span.End()

	creatorID := r.PathValue("creatorID")
	snapshot, err := h.adminService.CreatorSnapshot(ctx, creatorID)
	if err != nil {
		h.logger.WarnContext(ctx, "admin get creator failed", "creator_id", creatorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snapshot, false))
}

func (h *Handler) GetPublicCreator(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPublicCreator")
	defer span.End()

	creatorID := r.PathValue("creatorID")
	snapshot, err := h.directoryService.GetCreator(ctx, creatorID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snapshot, true))
}

func parseListCreatorsQuery(r *http.Request) (usecase.ListCreatorsInput, error) {
	query := r.URL.Query()
	var input usecase.ListCreatorsInput

	if raw := strings.TrimSpace(query.Get("completed")); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return input, fmt.Errorf("%w: completed must be true or false", usecase.ErrInvalidInput)
		}
		input.Completed = &completed
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
		input.Limit = limit
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("%w: offset must be an integer", usecase.ErrInvalidInput)
		}
		input.Offset = offset
	}
	return input, nil
}
