package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Actor = username
		}

		entry.PickupID = pickupIDFromPath(r.URL.Path)

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.PickupID != "" && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					entry.NewStatus = statusRequest.Status
					if id, err := strconv.ParseInt(entry.PickupID, 10, 64); err == nil {
						if pickup, found := s.cache.Get(id); found {
							entry.OldStatus = pickup.Status
						} else if pickup, err := s.pickups.GetByID(r.Context(), id); err == nil {
							entry.OldStatus = pickup.Status
						}
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func pickupIDFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "pickups" && i+1 < len(parts) {
			if _, err := strconv.ParseInt(parts[i+1], 10, 64); err == nil {
				return parts[i+1]
			}
		}
	}
	return ""
}

func handlerName(path string, method string) string {
	switch {
	case strings.HasPrefix(path, "/pickups"):
		switch {
		case path == "/pickups/bulk":
			return "handleBulkSchedule"
		case path == "/pickups/export":
			return "handleExportPickups"
		case strings.HasSuffix(path, "/assign"):
			return "handleAssignDriver"
		case strings.HasSuffix(path, "/status"):
			return "handleUpdateStatus"
		case strings.HasSuffix(path, "/detail"):
			return "handlePickupDetail"
		case method == http.MethodPost:
			return "handleSchedulePickup"
		case method == http.MethodPut:
			return "handleUpdateDetails"
		default:
			return "handleGetPickup"
		}
	case strings.HasPrefix(path, "/drivers"):
		switch {
		case strings.HasSuffix(path, "/status"):
			return "handleSetDriverStatus"
		case strings.HasSuffix(path, "/available"):
			return "handleAvailableDrivers"
		default:
			return "handleDriverRoster"
		}
	case strings.HasPrefix(path, "/activity"):
		return "handleRecentActivity"
	default:
		return "unknown"
	}
}
