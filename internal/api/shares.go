package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/service"
)

// SharesHandler handles list-sharing endpoints. All policy lives in the
// share manager; these handlers only translate HTTP.
type SharesHandler struct {
	Shares *service.ShareManager
}

type upsertShareRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

// List handles GET /api/lists/{id}/shares.
func (h *SharesHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	claims := GetClaims(r.Context())
	shares, err := h.Shares.ListShares(r.Context(), listID, claims.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if shares == nil {
		shares = []model.Share{}
	}
	jsonResponse(w, http.StatusOK, shares)
}

// Upsert handles POST /api/lists/{id}/shares. Sharing again with the
// same person updates the permission in place.
func (h *SharesHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req upsertShareRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	claims := GetClaims(r.Context())
	share, err := h.Shares.UpsertShare(r.Context(), listID, claims.UserID, req.Email, model.Permission(req.Permission))
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("list shared", "list", listID, "with", req.Email, "permission", req.Permission)
	jsonResponse(w, http.StatusCreated, share)
}

// Delete handles DELETE /api/lists/{id}/shares/{shareID}.
func (h *SharesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid list id")
		return
	}
	shareID, err := strconv.ParseInt(r.PathValue("shareID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid share id")
		return
	}

	claims := GetClaims(r.Context())
	if err := h.Shares.RemoveShare(r.Context(), listID, shareID, claims.UserID); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "share removed"})
}
