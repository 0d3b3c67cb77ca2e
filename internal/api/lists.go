package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sacirovic/rallebola/internal/access"
	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

// ListsHandler handles list CRUD endpoints.
type ListsHandler struct {
	DB *sql.DB
}

type listRequest struct {
	Name string `json:"name"`
}

// resolveList parses the {id} path value and resolves the caller's
// permission on that list. A nil return means the response has already
// been written. Missing lists and no-access lists both come back as 404.
func (h *ListsHandler) resolveList(w http.ResponseWriter, r *http.Request, minimum model.Permission) (int64, model.Permission, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid list id")
		return 0, model.PermissionNone, false
	}

	claims := GetClaims(r.Context())
	perm, err := access.ResolveList(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return 0, model.PermissionNone, false
	}
	if !perm.AtLeast(minimum) {
		jsonError(w, http.StatusNotFound, "list not found")
		return 0, model.PermissionNone, false
	}
	return id, perm, true
}

// List handles GET /api/lists.
func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	lists, err := store.ListPersonalLists(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	jsonResponse(w, http.StatusOK, lists)
}

// ListShared handles GET /api/lists/shared.
func (h *ListsHandler) ListShared(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	lists, err := store.ListSharedWithUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list shared lists")
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	jsonResponse(w, http.StatusOK, lists)
}

// Create handles POST /api/lists.
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	claims := GetClaims(r.Context())
	list, err := store.CreateList(r.Context(), h.DB, claims.UserID, req.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	jsonResponse(w, http.StatusCreated, list)
}

// Get handles GET /api/lists/{id}. Returns the list, its items and the
// caller's effective permission.
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, perm, ok := h.resolveList(w, r, model.PermissionView)
	if !ok {
		return
	}

	list, err := store.GetList(r.Context(), h.DB, id)
	if err != nil || list == nil {
		jsonError(w, http.StatusInternalServerError, "failed to get list")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"list":       list,
		"items":      items,
		"permission": perm,
	})
}

// Update handles PUT /api/lists/{id}. Renaming is reserved for the owner.
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, perm, ok := h.resolveList(w, r, model.PermissionView)
	if !ok {
		return
	}
	if perm != model.PermissionOwner {
		jsonError(w, http.StatusForbidden, "only the owner can rename a list")
		return
	}

	var req listRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.RenameList(r.Context(), h.DB, id, req.Name); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to rename list")
		return
	}

	list, _ := store.GetList(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, list)
}

// Delete handles DELETE /api/lists/{id}. Owner only; items, shares and
// borrow requests go with the list.
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, perm, ok := h.resolveList(w, r, model.PermissionView)
	if !ok {
		return
	}
	if perm != model.PermissionOwner {
		jsonError(w, http.StatusForbidden, "only the owner can delete a list")
		return
	}

	if err := store.DeleteList(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}

	slog.Info("list deleted", "list", id, "user", GetClaims(r.Context()).Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "list deleted"})
}
