package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

// ItemsHandler handles item endpoints nested under a list.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type updateItemRequest struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// lists reuses the list resolution helper; items inherit the permission
// of the list they live in.
func (h *ItemsHandler) lists() *ListsHandler { return &ListsHandler{DB: h.DB} }

// List handles GET /api/lists/{id}/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, _, ok := h.lists().resolveList(w, r, model.PermissionView)
	if !ok {
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, listID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/lists/{id}/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, _, ok := h.lists().resolveList(w, r, model.PermissionEdit)
	if !ok {
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, listID, req.Name, req.Quantity, req.Notes)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	store.TouchList(r.Context(), h.DB, listID)
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/lists/{id}/items/{itemID}. Absent fields are
// left unchanged.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID, _, ok := h.lists().resolveList(w, r, model.PermissionEdit)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(r.PathValue("itemID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItemInList(r.Context(), h.DB, itemID, listID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		jsonError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	updated, err := store.UpdateItem(r.Context(), h.DB, itemID, store.ItemUpdate{
		Name:     req.Name,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if updated == nil {
		// No fields in the payload; echo the current state.
		updated = item
	}

	store.TouchList(r.Context(), h.DB, listID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/lists/{id}/items/{itemID}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, _, ok := h.lists().resolveList(w, r, model.PermissionEdit)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(r.PathValue("itemID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItemInList(r.Context(), h.DB, itemID, listID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, itemID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	store.TouchList(r.Context(), h.DB, listID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
