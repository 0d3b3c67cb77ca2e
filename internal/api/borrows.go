package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/service"
)

// BorrowsHandler handles borrow-request endpoints. All workflow policy
// lives in the borrow engine.
type BorrowsHandler struct {
	Borrows *service.BorrowEngine
}

type createBorrowRequest struct {
	ItemID  int64  `json:"item_id"`
	Message string `json:"message"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/borrow-requests.
func (h *BorrowsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID <= 0 {
		jsonError(w, http.StatusBadRequest, "item_id required")
		return
	}

	claims := GetClaims(r.Context())
	request, err := h.Borrows.Create(r.Context(), req.ItemID, claims.UserID, req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("borrow requested", "request", request.ID, "item", request.ItemName, "requester", claims.Email)
	jsonResponse(w, http.StatusCreated, request)
}

// Incoming handles GET /api/borrow-requests/incoming, requests against
// the caller's items.
func (h *BorrowsHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	requests, err := h.Borrows.ListIncoming(r.Context(), claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list borrow requests")
		return
	}
	if requests == nil {
		requests = []model.BorrowRequest{}
	}
	jsonResponse(w, http.StatusOK, requests)
}

// Outgoing handles GET /api/borrow-requests/outgoing, the caller's own
// requests.
func (h *BorrowsHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	requests, err := h.Borrows.ListOutgoing(r.Context(), claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list borrow requests")
		return
	}
	if requests == nil {
		requests = []model.BorrowRequest{}
	}
	jsonResponse(w, http.StatusOK, requests)
}

// Transition handles PUT /api/borrow-requests/{id}/status.
func (h *BorrowsHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case model.BorrowApproved, model.BorrowRejected, model.BorrowReturned:
	default:
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	claims := GetClaims(r.Context())
	request, err := h.Borrows.Transition(r.Context(), id, claims.UserID, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("borrow request updated", "request", request.ID, "status", request.Status, "by", claims.Email)
	jsonResponse(w, http.StatusOK, request)
}
