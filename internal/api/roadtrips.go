package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/service"
	"github.com/Sacirovic/rallebola/internal/store"
)

// RoadtripsHandler handles roadtrip, member and todo endpoints.
type RoadtripsHandler struct {
	DB    *sql.DB
	Trips *service.TripManager
}

type roadtripRequest struct {
	Name string  `json:"name"`
	Date *string `json:"date"`
}

type addMemberRequest struct {
	Email string `json:"email"`
}

type createTodoRequest struct {
	Text string `json:"text"`
}

type updateTodoRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

type reorderTodosRequest struct {
	IDs []int64 `json:"ids"`
}

// tripAccess parses {id} and loads the roadtrip if the caller is its
// owner or a member. Unknown trips and trips the caller cannot see both
// return 404.
func (h *RoadtripsHandler) tripAccess(w http.ResponseWriter, r *http.Request) (*model.Roadtrip, bool, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid roadtrip id")
		return nil, false, false
	}

	trip, err := store.GetRoadtrip(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return nil, false, false
	}

	claims := GetClaims(r.Context())
	if trip != nil {
		if trip.OwnerID == claims.UserID {
			return trip, true, true
		}
		member, err := store.IsRoadtripMember(r.Context(), h.DB, id, claims.UserID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return nil, false, false
		}
		if member {
			return trip, false, true
		}
	}

	jsonError(w, http.StatusNotFound, "roadtrip not found")
	return nil, false, false
}

// List handles GET /api/roadtrips.
func (h *RoadtripsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	trips, err := store.ListRoadtripsForUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list roadtrips")
		return
	}
	if trips == nil {
		trips = []model.Roadtrip{}
	}
	jsonResponse(w, http.StatusOK, trips)
}

// Create handles POST /api/roadtrips. The trip's grocery list is created
// in the same transaction.
func (h *RoadtripsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roadtripRequest
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
	trip, err := store.CreateRoadtrip(r.Context(), h.DB, claims.UserID, req.Name, req.Date)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create roadtrip")
		return
	}

	slog.Info("roadtrip created", "roadtrip", trip.ID, "owner", claims.Email)
	jsonResponse(w, http.StatusCreated, trip)
}

// Get handles GET /api/roadtrips/{id}. Members and todos come along.
func (h *RoadtripsHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	members, err := store.ListRoadtripMembers(r.Context(), h.DB, trip.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	todos, err := store.ListTodos(r.Context(), h.DB, trip.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	trip.Members = members
	trip.Todos = todos
	jsonResponse(w, http.StatusOK, trip)
}

// Update handles PUT /api/roadtrips/{id}. Owner only.
func (h *RoadtripsHandler) Update(w http.ResponseWriter, r *http.Request) {
	trip, isOwner, ok := h.tripAccess(w, r)
	if !ok {
		return
	}
	if !isOwner {
		jsonError(w, http.StatusForbidden, "only the owner can update a roadtrip")
		return
	}

	var req roadtripRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateRoadtrip(r.Context(), h.DB, trip.ID, req.Name, req.Date); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update roadtrip")
		return
	}

	updated, _ := store.GetRoadtrip(r.Context(), h.DB, trip.ID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/roadtrips/{id}. Owner only; memberships,
// todos and the grocery list cascade away.
func (h *RoadtripsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	trip, isOwner, ok := h.tripAccess(w, r)
	if !ok {
		return
	}
	if !isOwner {
		jsonError(w, http.StatusForbidden, "only the owner can delete a roadtrip")
		return
	}

	if err := store.DeleteRoadtrip(r.Context(), h.DB, trip.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete roadtrip")
		return
	}

	slog.Info("roadtrip deleted", "roadtrip", trip.ID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "roadtrip deleted"})
}

// GroceryList handles GET /api/roadtrips/{id}/grocery-list.
func (h *RoadtripsHandler) GroceryList(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	list, err := store.GetRoadtripGroceryList(r.Context(), h.DB, trip.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		jsonError(w, http.StatusNotFound, "grocery list not found")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, list.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"list":  list,
		"items": items,
	})
}

// AddMember handles POST /api/roadtrips/{id}/members.
func (h *RoadtripsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid roadtrip id")
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	claims := GetClaims(r.Context())
	member, err := h.Trips.AddMember(r.Context(), id, claims.UserID, req.Email)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("roadtrip member added", "roadtrip", id, "member", req.Email)
	jsonResponse(w, http.StatusCreated, member)
}

// RemoveMember handles DELETE /api/roadtrips/{id}/members/{userID}.
func (h *RoadtripsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid roadtrip id")
		return
	}
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	claims := GetClaims(r.Context())
	if err := h.Trips.RemoveMember(r.Context(), id, claims.UserID, userID); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "member removed"})
}

// CreateTodo handles POST /api/roadtrips/{id}/todos.
func (h *RoadtripsHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		jsonError(w, http.StatusBadRequest, "text required")
		return
	}

	todo, err := store.CreateTodo(r.Context(), h.DB, trip.ID, req.Text)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	jsonResponse(w, http.StatusCreated, todo)
}

// UpdateTodo handles PUT /api/roadtrips/{id}/todos/{todoID}.
func (h *RoadtripsHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	todoID, err := strconv.ParseInt(r.PathValue("todoID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		jsonError(w, http.StatusBadRequest, "text cannot be empty")
		return
	}

	todo, err := store.UpdateTodo(r.Context(), h.DB, todoID, trip.ID, store.TodoUpdate{
		Text: req.Text,
		Done: req.Done,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	if todo == nil {
		todo, err = store.GetTodo(r.Context(), h.DB, todoID, trip.ID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	if todo == nil {
		jsonError(w, http.StatusNotFound, "todo not found")
		return
	}
	jsonResponse(w, http.StatusOK, todo)
}

// ReorderTodos handles PUT /api/roadtrips/{id}/todos/reorder.
func (h *RoadtripsHandler) ReorderTodos(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	var req reorderTodosRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		jsonError(w, http.StatusBadRequest, "ids required")
		return
	}

	if err := store.ReorderTodos(r.Context(), h.DB, trip.ID, req.IDs); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reorder todos")
		return
	}

	todos, err := store.ListTodos(r.Context(), h.DB, trip.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	jsonResponse(w, http.StatusOK, todos)
}

// DeleteTodo handles DELETE /api/roadtrips/{id}/todos/{todoID}.
func (h *RoadtripsHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	trip, _, ok := h.tripAccess(w, r)
	if !ok {
		return
	}

	todoID, err := strconv.ParseInt(r.PathValue("todoID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := store.DeleteTodo(r.Context(), h.DB, todoID, trip.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}
