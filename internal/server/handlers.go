package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"agromarket/internal/dispatch"
	"agromarket/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *Server) handleSchedulePickup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID       int64  `json:"order_id"`
		Date          string `json:"date"`
		Location      string `json:"location"`
		Notes         string `json:"notes"`
		ContactPerson string `json:"contact_person"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid request body"})
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid date format, use YYYY-MM-DD"})
		return
	}

	pickupID, err := s.dispatch.SchedulePickup(r.Context(), actorFrom(r.Context()), dispatch.ScheduleInput{
		OrderID:       req.OrderID,
		Date:          date,
		Location:      req.Location,
		Notes:         req.Notes,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		respondDispatchError(w, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]int64{"pickup_id": pickupID})
}

func (s *Server) handleBulkSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderIDs []int64 `json:"order_ids"`
		Date     string  `json:"date"`
		Location string  `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid request body"})
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid date format, use YYYY-MM-DD"})
		return
	}

	result, err := s.dispatch.BulkSchedulePickups(r.Context(), actorFrom(r.Context()), req.OrderIDs, date, req.Location)
	if err != nil {
		respondDispatchError(w, err)
		return
	}

	respondData(w, http.StatusOK, result)
}

func (s *Server) handleGetPickup(w http.ResponseWriter, r *http.Request) {
	pickupID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid pickup id"})
		return
	}

	if pickup, found := s.cache.Get(pickupID); found {
		respondData(w, http.StatusOK, pickup)
		return
	}

	pickup, err := s.pickups.GetByID(r.Context(), pickupID)
	if err != nil {
		respondJSON(w, http.StatusNotFound, apiResponse{OK: false, ErrorKind: "not_found", Error: "pickup not found"})
		return
	}
	respondData(w, http.StatusOK, pickup)
}

func (s *Server) handlePickupDetail(w http.ResponseWriter, r *http.Request) {
	pickupID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid pickup id"})
		return
	}

	view, err := s.reporting.GetPickupDetail(r.Context(), pickupID)
	if err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

func (s *Server) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	pickupID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid pickup id"})
		return
	}

	var req struct {
		DriverID int64 `json:"driver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DriverID <= 0 {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "driver_id is required"})
		return
	}

	if err := s.dispatch.AssignDriver(r.Context(), actorFrom(r.Context()), pickupID, req.DriverID); err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "driver assigned"})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	pickupID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid pickup id"})
		return
	}

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid request body"})
		return
	}

	if err := s.dispatch.UpdateStatus(r.Context(), actorFrom(r.Context()), pickupID, req.Status, req.Note); err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (s *Server) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	pickupID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid pickup id"})
		return
	}

	var req struct {
		Status        string `json:"status"`
		Date          string `json:"date"`
		Location      string `json:"location"`
		DriverID      *int64 `json:"driver_id"`
		Notes         string `json:"notes"`
		ContactPerson string `json:"contact_person"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid request body"})
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid date format, use YYYY-MM-DD"})
		return
	}

	err := s.dispatch.UpdatePickupDetails(r.Context(), actorFrom(r.Context()), dispatch.DetailsInput{
		PickupID:      pickupID,
		Status:        req.Status,
		Date:          date,
		Location:      req.Location,
		DriverID:      req.DriverID,
		Notes:         req.Notes,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "pickup updated"})
}

func (s *Server) handleDriverRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := s.reporting.DriverRoster(r.Context())
	if err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, roster)
}

func (s *Server) handleAvailableDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.reporting.ListAvailableDrivers(r.Context())
	if err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, drivers)
}

func (s *Server) handleSetDriverStatus(w http.ResponseWriter, r *http.Request) {
	driverID, ok := pathID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid driver id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid request body"})
		return
	}

	if err := s.dispatch.SetDriverStatus(r.Context(), actorFrom(r.Context()), driverID, req.Status); err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "driver status updated"})
}

func (s *Server) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.reporting.RecentActivity(r.Context(), limit)
	if err != nil {
		respondDispatchError(w, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

func (s *Server) handleExportPickups(w http.ResponseWriter, r *http.Request) {
	filter := postgresql.PickupFilter{
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("driver_id"); raw != "" {
		driverID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "invalid driver_id"})
			return
		}
		filter.DriverID = driverID
	}
	if filter.Status != "" {
		if _, err := dispatch.ParsePickupStatus(filter.Status); err != nil {
			respondJSON(w, http.StatusBadRequest, apiResponse{OK: false, ErrorKind: "validation", Error: "unknown status filter"})
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="pickups.csv"`)
	if err := s.reporting.ExportPickupsCSV(r.Context(), filter, w); err != nil {
		respondJSON(w, http.StatusInternalServerError, apiResponse{OK: false, ErrorKind: "persistence", Error: "export failed"})
		return
	}
}
