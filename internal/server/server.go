//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"agromarket/internal/dispatch"
	"agromarket/internal/reporting"
	"agromarket/internal/repository"
	"agromarket/internal/repository/postgresql"
)

// Dispatch is the pickup lifecycle surface the handlers drive.
type Dispatch interface {
	SchedulePickup(ctx context.Context, actor dispatch.Actor, in dispatch.ScheduleInput) (int64, error)
	BulkSchedulePickups(ctx context.Context, actor dispatch.Actor, orderIDs []int64, date time.Time, location string) (dispatch.BulkResult, error)
	AssignDriver(ctx context.Context, actor dispatch.Actor, pickupID, driverID int64) error
	UpdateStatus(ctx context.Context, actor dispatch.Actor, pickupID int64, newStatus, note string) error
	UpdatePickupDetails(ctx context.Context, actor dispatch.Actor, in dispatch.DetailsInput) error
	SetDriverStatus(ctx context.Context, actor dispatch.Actor, driverID int64, status string) error
}

// Reporting is the read-only projection surface.
type Reporting interface {
	GetPickupDetail(ctx context.Context, pickupID int64) (*reporting.PickupDetailView, error)
	DriverRoster(ctx context.Context) ([]*reporting.RosterEntry, error)
	ListAvailableDrivers(ctx context.Context) ([]*repository.DriverDetails, error)
	RecentActivity(ctx context.Context, limit int) ([]*repository.ActivityLogEntry, error)
	ExportPickupsCSV(ctx context.Context, filter postgresql.PickupFilter, w io.Writer) error
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (*repository.User, error)
}

// PickupStore backs the raw pickup read with a cache-first path.
type PickupStore interface {
	GetByID(ctx context.Context, id int64) (*repository.Pickup, error)
}

type PickupCache interface {
	Get(pickupID int64) (*repository.Pickup, bool)
}

type Server struct {
	dispatch  Dispatch
	reporting Reporting
	userRepo  UserRepo
	pickups   PickupStore
	cache     PickupCache

	server       *http.Server
	AuditManager *AuditManager
}

func New(dispatch Dispatch, reporting Reporting, userRepo UserRepo, pickups PickupStore, cache PickupCache) *Server {
	return &Server{
		dispatch:     dispatch,
		reporting:    reporting,
		userRepo:     userRepo,
		pickups:      pickups,
		cache:        cache,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond),
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	log.Printf("Back office server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.AuditManager.Shutdown(ctx)
	log.Println("Server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/pickups", s.handleSchedulePickup).Methods(http.MethodPost)
	router.HandleFunc("/pickups/bulk", s.handleBulkSchedule).Methods(http.MethodPost)
	router.HandleFunc("/pickups/export", s.handleExportPickups).Methods(http.MethodGet)
	router.HandleFunc("/pickups/{id:[0-9]+}", s.handleGetPickup).Methods(http.MethodGet)
	router.HandleFunc("/pickups/{id:[0-9]+}", s.handleUpdateDetails).Methods(http.MethodPut)
	router.HandleFunc("/pickups/{id:[0-9]+}/detail", s.handlePickupDetail).Methods(http.MethodGet)
	router.HandleFunc("/pickups/{id:[0-9]+}/assign", s.handleAssignDriver).Methods(http.MethodPost)
	router.HandleFunc("/pickups/{id:[0-9]+}/status", s.handleUpdateStatus).Methods(http.MethodPut)

	router.HandleFunc("/drivers", s.handleDriverRoster).Methods(http.MethodGet)
	router.HandleFunc("/drivers/available", s.handleAvailableDrivers).Methods(http.MethodGet)
	router.HandleFunc("/drivers/{id:[0-9]+}/status", s.handleSetDriverStatus).Methods(http.MethodPut)

	router.HandleFunc("/activity", s.handleRecentActivity).Methods(http.MethodGet)

	return s.auditLogMiddleware(s.basicAuthMiddleware(router))
}

type actorCtxKey struct{}

func withActor(ctx context.Context, actor dispatch.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

func actorFrom(ctx context.Context) dispatch.Actor {
	actor, _ := ctx.Value(actorCtxKey{}).(dispatch.Actor)
	return actor
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		actor := dispatch.Actor{UserID: user.ID, Username: user.Username, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

type apiResponse struct {
	OK        bool        `json:"ok"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Error     string      `json:"error,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, apiResponse{OK: true, Data: data})
}

func respondDispatchError(w http.ResponseWriter, err error) {
	kind := dispatch.KindOf(err)
	message := err.Error()
	if kind == "persistence" {
		// Never leak storage internals; the transaction has rolled back.
		message = "operation failed"
	}
	respondJSON(w, statusForKind(kind), apiResponse{OK: false, ErrorKind: kind, Error: message})
}

func statusForKind(kind string) int {
	switch kind {
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "invalid_transition":
		return http.StatusUnprocessableEntity
	case "validation":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
