package api

import (
	"database/sql"
	"net/http"

	"github.com/Sacirovic/rallebola/internal/metrics"
	"github.com/Sacirovic/rallebola/internal/notify"
	"github.com/Sacirovic/rallebola/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, notifier notify.Notifier, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	listsHandler := &ListsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	sharesHandler := &SharesHandler{Shares: &service.ShareManager{DB: db}}
	roadtripsHandler := &RoadtripsHandler{DB: db, Trips: &service.TripManager{DB: db}}
	borrowsHandler := &BorrowsHandler{Borrows: &service.BorrowEngine{DB: db, Notifier: notifier}}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: registration and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Lists.
	mux.Handle("GET /api/lists", authMW(http.HandlerFunc(listsHandler.List)))
	mux.Handle("GET /api/lists/shared", authMW(http.HandlerFunc(listsHandler.ListShared)))
	mux.Handle("POST /api/lists", authMW(http.HandlerFunc(listsHandler.Create)))
	mux.Handle("GET /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Get)))
	mux.Handle("PUT /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Update)))
	mux.Handle("DELETE /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Delete)))

	// Items.
	mux.Handle("GET /api/lists/{id}/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/lists/{id}/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/lists/{id}/items/{itemID}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/lists/{id}/items/{itemID}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Shares.
	mux.Handle("GET /api/lists/{id}/shares", authMW(http.HandlerFunc(sharesHandler.List)))
	mux.Handle("POST /api/lists/{id}/shares", authMW(http.HandlerFunc(sharesHandler.Upsert)))
	mux.Handle("DELETE /api/lists/{id}/shares/{shareID}", authMW(http.HandlerFunc(sharesHandler.Delete)))

	// Roadtrips.
	mux.Handle("GET /api/roadtrips", authMW(http.HandlerFunc(roadtripsHandler.List)))
	mux.Handle("POST /api/roadtrips", authMW(http.HandlerFunc(roadtripsHandler.Create)))
	mux.Handle("GET /api/roadtrips/{id}", authMW(http.HandlerFunc(roadtripsHandler.Get)))
	mux.Handle("PUT /api/roadtrips/{id}", authMW(http.HandlerFunc(roadtripsHandler.Update)))
	mux.Handle("DELETE /api/roadtrips/{id}", authMW(http.HandlerFunc(roadtripsHandler.Delete)))
	mux.Handle("GET /api/roadtrips/{id}/grocery-list", authMW(http.HandlerFunc(roadtripsHandler.GroceryList)))

	// Roadtrip members.
	mux.Handle("POST /api/roadtrips/{id}/members", authMW(http.HandlerFunc(roadtripsHandler.AddMember)))
	mux.Handle("DELETE /api/roadtrips/{id}/members/{userID}", authMW(http.HandlerFunc(roadtripsHandler.RemoveMember)))

	// Roadtrip todos.
	mux.Handle("POST /api/roadtrips/{id}/todos", authMW(http.HandlerFunc(roadtripsHandler.CreateTodo)))
	mux.Handle("PUT /api/roadtrips/{id}/todos/reorder", authMW(http.HandlerFunc(roadtripsHandler.ReorderTodos)))
	mux.Handle("PUT /api/roadtrips/{id}/todos/{todoID}", authMW(http.HandlerFunc(roadtripsHandler.UpdateTodo)))
	mux.Handle("DELETE /api/roadtrips/{id}/todos/{todoID}", authMW(http.HandlerFunc(roadtripsHandler.DeleteTodo)))

	// Borrow requests.
	mux.Handle("POST /api/borrow-requests", authMW(http.HandlerFunc(borrowsHandler.Create)))
	mux.Handle("GET /api/borrow-requests/incoming", authMW(http.HandlerFunc(borrowsHandler.Incoming)))
	mux.Handle("GET /api/borrow-requests/outgoing", authMW(http.HandlerFunc(borrowsHandler.Outgoing)))
	mux.Handle("PUT /api/borrow-requests/{id}/status", authMW(http.HandlerFunc(borrowsHandler.Transition)))

	var handler http.Handler = mux
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
		handler = m.Middleware(handler)
	}
	return LoggingMiddleware(handler)
}
