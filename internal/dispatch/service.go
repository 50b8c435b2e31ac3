package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"

	"agromarket/internal/db"
	"agromarket/internal/metrics"
	"agromarket/internal/repository"
)

type OrderRepository interface {
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id int64, status string) error
}

type PickupRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, pickup *repository.Pickup) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Pickup, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Pickup, error)
	GetByOrderIDTx(ctx context.Context, tx db.Tx, orderID int64) (*repository.Pickup, error)
	UpdateTx(ctx context.Context, tx db.Tx, pickup *repository.Pickup) error
	CountActiveByDriverTx(ctx context.Context, tx db.Tx, driverID int64) (int, error)
}

type DriverRepository interface {
	GetByIDTx(ctx context.Context, tx db.Tx, userID int64) (*repository.DriverDetails, error)
	SetAvailabilityTx(ctx context.Context, tx db.Tx, userID int64, status string) error
	IncrementCompletedTx(ctx context.Context, tx db.Tx, userID int64) error
}

type ActivityLogRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.ActivityLogEntry) error
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

// PickupCache receives every pickup row the service commits, keeping reads
// that go through the cache as fresh as the database.
type PickupCache interface {
	Set(pickup *repository.Pickup)
}

// Actor is the authenticated identity performing a dispatch action. It is
// passed explicitly into every operation; there is no ambient session state.
type Actor struct {
	UserID   int64
	Username string
	Role     string
}

func (a Actor) ref() *int64 {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

type ScheduleInput struct {
	OrderID       int64
	Date          time.Time
	Location      string
	Notes         string
	ContactPerson string
}

type BulkResult struct {
	Scheduled int `json:"scheduled"`
	Skipped   int `json:"skipped"`
}

type DetailsInput struct {
	PickupID      int64
	Status        string
	Date          time.Time
	Location      string
	DriverID      *int64
	Notes         string
	ContactPerson string
}

// Service is the pickup lifecycle manager. Every mutation runs in a single
// transaction: locked reads, transition validation, the pickup mutation, any
// coupled driver availability change, the activity log entry and the audit
// outbox task all commit or roll back together.
type Service struct {
	db       db.DB
	orders   OrderRepository
	pickups  PickupRepository
	drivers  DriverRepository
	activity ActivityLogRepository
	outbox   OutboxRepository
	tracker  *AvailabilityTracker
	cache    PickupCache

	auditTopic string
	logger     *zap.Logger
}

func NewService(
	database db.DB,
	orders OrderRepository,
	pickups PickupRepository,
	drivers DriverRepository,
	activity ActivityLogRepository,
	outbox OutboxRepository,
	tracker *AvailabilityTracker,
	cache PickupCache,
	auditTopic string,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:         database,
		orders:     orders,
		pickups:    pickups,
		drivers:    drivers,
		activity:   activity,
		outbox:     outbox,
		tracker:    tracker,
		cache:      cache,
		auditTopic: auditTopic,
		logger:     logger,
	}
}

type auditEvent struct {
	Operation string    `json:"operation"`
	PickupID  int64     `json:"pickup_id,omitempty"`
	OrderID   int64     `json:"order_id,omitempty"`
	DriverID  int64     `json:"driver_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status,omitempty"`
	At        time.Time `json:"at"`
}

// SchedulePickup creates the pickup record for an order. The order row is
// locked first so concurrent schedules for the same order serialize and the
// loser observes the winner's pickup.
func (s *Service) SchedulePickup(ctx context.Context, actor Actor, in ScheduleInput) (int64, error) {
	if err := validateSchedule(in.Date, in.Location); err != nil {
		return 0, s.fail("schedule_pickup", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, s.fail("schedule_pickup", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	order, err := s.orders.GetByIDTx(ctx, tx, in.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return 0, s.fail("schedule_pickup", fmt.Errorf("order %d: %w", in.OrderID, ErrNotFound))
		}
		return 0, s.fail("schedule_pickup", persistence(err))
	}

	if _, err := s.pickups.GetByOrderIDTx(ctx, tx, in.OrderID); err == nil {
		return 0, s.fail("schedule_pickup", fmt.Errorf("order %d already has a pickup: %w", in.OrderID, ErrConflict))
	} else if !errors.Is(err, repository.ErrObjectNotFound) {
		return 0, s.fail("schedule_pickup", persistence(err))
	}

	now := time.Now().UTC()
	pickup := &repository.Pickup{
		OrderID:        in.OrderID,
		Status:         string(StatusPending),
		PickupDate:     in.Date,
		PickupLocation: in.Location,
		ContactPerson:  in.ContactPerson,
		PickupNotes:    in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	pickup.ID, err = s.pickups.CreateTx(ctx, tx, pickup)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, s.fail("schedule_pickup", fmt.Errorf("order %d already has a pickup: %w", in.OrderID, ErrConflict))
		}
		return 0, s.fail("schedule_pickup", persistence(err))
	}

	if OrderStatus(order.Status) == OrderStatusPending {
		if err := s.orders.UpdateStatusTx(ctx, tx, order.ID, string(OrderStatusProcessing)); err != nil {
			return 0, s.fail("schedule_pickup", persistence(err))
		}
	}

	msg := fmt.Sprintf("pickup #%d scheduled for order #%d at %s", pickup.ID, in.OrderID, in.Location)
	if err := s.recordTx(ctx, tx, actor, msg, auditEvent{
		Operation: "schedule_pickup",
		PickupID:  pickup.ID,
		OrderID:   in.OrderID,
		Actor:     actor.Username,
		NewStatus: string(StatusPending),
		At:        now,
	}); err != nil {
		return 0, s.fail("schedule_pickup", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, s.fail("schedule_pickup", persistence(err))
	}

	s.cache.Set(pickup)
	metrics.PickupsScheduledTotal.Inc()
	s.logger.Info("pickup scheduled",
		zap.Int64("pickup_id", pickup.ID),
		zap.Int64("order_id", in.OrderID),
		zap.String("actor", actor.Username))
	return pickup.ID, nil
}

// BulkSchedulePickups schedules a pickup per order in one transaction.
// Orders that are missing or already have a pickup are skipped and counted;
// a hard persistence error rolls back the entire batch.
func (s *Service) BulkSchedulePickups(ctx context.Context, actor Actor, orderIDs []int64, date time.Time, location string) (BulkResult, error) {
	var result BulkResult

	if err := validateSchedule(date, location); err != nil {
		return result, s.fail("bulk_schedule", err)
	}
	if len(orderIDs) == 0 {
		return result, s.fail("bulk_schedule", fmt.Errorf("%w: no orders given", ErrValidation))
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return result, s.fail("bulk_schedule", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	now := time.Now().UTC()
	var created []*repository.Pickup

	for _, orderID := range orderIDs {
		order, err := s.orders.GetByIDTx(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				result.Skipped++
				continue
			}
			return BulkResult{}, s.fail("bulk_schedule", persistence(err))
		}

		if _, err := s.pickups.GetByOrderIDTx(ctx, tx, orderID); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrObjectNotFound) {
			return BulkResult{}, s.fail("bulk_schedule", persistence(err))
		}

		pickup := &repository.Pickup{
			OrderID:        orderID,
			Status:         string(StatusPending),
			PickupDate:     date,
			PickupLocation: location,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		pickup.ID, err = s.pickups.CreateTx(ctx, tx, pickup)
		if err != nil {
			return BulkResult{}, s.fail("bulk_schedule", persistence(err))
		}

		if OrderStatus(order.Status) == OrderStatusPending {
			if err := s.orders.UpdateStatusTx(ctx, tx, orderID, string(OrderStatusProcessing)); err != nil {
				return BulkResult{}, s.fail("bulk_schedule", persistence(err))
			}
		}

		msg := fmt.Sprintf("pickup #%d scheduled for order #%d at %s", pickup.ID, orderID, location)
		if err := s.activity.CreateTx(ctx, tx, &repository.ActivityLogEntry{
			UserID:    actor.ref(),
			Message:   msg,
			CreatedAt: now,
		}); err != nil {
			return BulkResult{}, s.fail("bulk_schedule", persistence(err))
		}

		created = append(created, pickup)
		result.Scheduled++
	}

	if err := s.auditTx(ctx, tx, auditEvent{
		Operation: "bulk_schedule",
		Actor:     actor.Username,
		At:        now,
	}); err != nil {
		return BulkResult{}, s.fail("bulk_schedule", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return BulkResult{}, s.fail("bulk_schedule", persistence(err))
	}

	for _, pickup := range created {
		s.cache.Set(pickup)
		metrics.PickupsScheduledTotal.Inc()
	}
	s.logger.Info("bulk schedule finished",
		zap.Int("scheduled", result.Scheduled),
		zap.Int("skipped", result.Skipped),
		zap.String("actor", actor.Username))
	return result, nil
}

// AssignDriver attaches a driver to a pending or scheduled pickup and marks
// the driver busy, atomically. The pickup row lock serializes concurrent
// assignments; the precondition is re-checked against the locked row, so the
// second dispatcher gets ErrInvalidTransition instead of overwriting.
func (s *Service) AssignDriver(ctx context.Context, actor Actor, pickupID, driverID int64) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return s.fail("assign_driver", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	pickup, err := s.pickups.GetByIDTx(ctx, tx, pickupID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return s.fail("assign_driver", fmt.Errorf("pickup %d: %w", pickupID, ErrNotFound))
		}
		return s.fail("assign_driver", persistence(err))
	}

	oldStatus := PickupStatus(pickup.Status)
	if !oldStatus.IsAssignable() {
		return s.fail("assign_driver",
			fmt.Errorf("pickup %d is %s, not assignable: %w", pickupID, oldStatus, ErrInvalidTransition))
	}

	if _, err := s.drivers.GetByIDTx(ctx, tx, driverID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return s.fail("assign_driver", fmt.Errorf("driver %d: %w", driverID, ErrNotFound))
		}
		return s.fail("assign_driver", persistence(err))
	}

	now := time.Now().UTC()
	pickup.Status = string(StatusAssigned)
	pickup.AssignedTo = &driverID
	pickup.UpdatedAt = now

	if err := s.pickups.UpdateTx(ctx, tx, pickup); err != nil {
		return s.fail("assign_driver", persistence(err))
	}
	if err := s.tracker.MarkAssignedTx(ctx, tx, driverID); err != nil {
		return s.fail("assign_driver", persistence(err))
	}

	msg := fmt.Sprintf("pickup #%d assigned to driver #%d", pickupID, driverID)
	if err := s.recordTx(ctx, tx, actor, msg, auditEvent{
		Operation: "assign_driver",
		PickupID:  pickupID,
		OrderID:   pickup.OrderID,
		DriverID:  driverID,
		Actor:     actor.Username,
		OldStatus: string(oldStatus),
		NewStatus: string(StatusAssigned),
		At:        now,
	}); err != nil {
		return s.fail("assign_driver", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return s.fail("assign_driver", persistence(err))
	}

	s.cache.Set(pickup)
	metrics.DriversAssignedTotal.Inc()
	s.logger.Info("driver assigned",
		zap.Int64("pickup_id", pickupID),
		zap.Int64("driver_id", driverID),
		zap.String("actor", actor.Username))
	return nil
}

// UpdateStatus moves a pickup along the lifecycle graph. A same-status call
// is an idempotent no-op. Transitions into completed and cancelled carry the
// coupled driver and order effects.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, pickupID int64, newStatusRaw, note string) error {
	newStatus, err := ParsePickupStatus(newStatusRaw)
	if err != nil {
		return s.fail("update_status", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return s.fail("update_status", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	pickup, err := s.pickups.GetByIDTx(ctx, tx, pickupID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return s.fail("update_status", fmt.Errorf("pickup %d: %w", pickupID, ErrNotFound))
		}
		return s.fail("update_status", persistence(err))
	}

	oldStatus := PickupStatus(pickup.Status)
	if oldStatus == newStatus {
		return nil
	}
	if !CanTransition(oldStatus, newStatus) {
		return s.fail("update_status",
			fmt.Errorf("pickup %d: %s -> %s: %w", pickupID, oldStatus, newStatus, ErrInvalidTransition))
	}

	prevDriver := pickup.AssignedTo
	now := time.Now().UTC()
	pickup.Status = string(newStatus)
	pickup.UpdatedAt = now
	if newStatus == StatusPending {
		// Unassignment: back to pending clears the driver reference.
		pickup.AssignedTo = nil
	}

	if err := s.pickups.UpdateTx(ctx, tx, pickup); err != nil {
		return s.fail("update_status", persistence(err))
	}
	if err := s.applyTransitionEffectsTx(ctx, tx, pickup, oldStatus, newStatus, prevDriver); err != nil {
		return s.fail("update_status", err)
	}

	msg := fmt.Sprintf("pickup #%d status changed from %s to %s", pickupID, oldStatus, newStatus)
	if note != "" {
		msg += ": " + note
	}
	if err := s.recordTx(ctx, tx, actor, msg, auditEvent{
		Operation: "update_status",
		PickupID:  pickupID,
		OrderID:   pickup.OrderID,
		Actor:     actor.Username,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		At:        now,
	}); err != nil {
		return s.fail("update_status", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return s.fail("update_status", persistence(err))
	}

	s.cache.Set(pickup)
	if newStatus == StatusCompleted {
		metrics.PickupsCompletedTotal.Inc()
	}
	s.logger.Info("pickup status updated",
		zap.Int64("pickup_id", pickupID),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)),
		zap.String("actor", actor.Username))
	return nil
}

// UpdatePickupDetails is the composite edit used by the management UI: a
// full-field update in one transaction, with the status edge re-validated
// and driver availability re-derived when the assignment changed.
func (s *Service) UpdatePickupDetails(ctx context.Context, actor Actor, in DetailsInput) error {
	newStatus, err := ParsePickupStatus(in.Status)
	if err != nil {
		return s.fail("update_details", err)
	}
	if err := validateSchedule(in.Date, in.Location); err != nil {
		return s.fail("update_details", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return s.fail("update_details", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	pickup, err := s.pickups.GetByIDTx(ctx, tx, in.PickupID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return s.fail("update_details", fmt.Errorf("pickup %d: %w", in.PickupID, ErrNotFound))
		}
		return s.fail("update_details", persistence(err))
	}

	oldStatus := PickupStatus(pickup.Status)
	if !CanTransition(oldStatus, newStatus) {
		return s.fail("update_details",
			fmt.Errorf("pickup %d: %s -> %s: %w", in.PickupID, oldStatus, newStatus, ErrInvalidTransition))
	}

	prevDriver := pickup.AssignedTo
	driverChanged := !sameDriver(prevDriver, in.DriverID)

	if driverChanged && in.DriverID != nil {
		if _, err := s.drivers.GetByIDTx(ctx, tx, *in.DriverID); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return s.fail("update_details", fmt.Errorf("driver %d: %w", *in.DriverID, ErrNotFound))
			}
			return s.fail("update_details", persistence(err))
		}
	}

	now := time.Now().UTC()
	pickup.Status = string(newStatus)
	pickup.PickupDate = in.Date
	pickup.PickupLocation = in.Location
	pickup.AssignedTo = in.DriverID
	pickup.PickupNotes = in.Notes
	pickup.ContactPerson = in.ContactPerson
	pickup.UpdatedAt = now

	if err := s.pickups.UpdateTx(ctx, tx, pickup); err != nil {
		return s.fail("update_details", persistence(err))
	}

	if driverChanged {
		if in.DriverID != nil {
			if err := s.tracker.MarkAssignedTx(ctx, tx, *in.DriverID); err != nil {
				return s.fail("update_details", persistence(err))
			}
		}
		if prevDriver != nil {
			if err := s.reevaluateDriverTx(ctx, tx, *prevDriver); err != nil {
				return s.fail("update_details", err)
			}
		}
	}

	if oldStatus != newStatus {
		if err := s.applyTransitionEffectsTx(ctx, tx, pickup, oldStatus, newStatus, prevDriver); err != nil {
			return s.fail("update_details", err)
		}
	}

	msg := fmt.Sprintf("pickup #%d details updated", in.PickupID)
	if err := s.recordTx(ctx, tx, actor, msg, auditEvent{
		Operation: "update_details",
		PickupID:  in.PickupID,
		OrderID:   pickup.OrderID,
		Actor:     actor.Username,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		At:        now,
	}); err != nil {
		return s.fail("update_details", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return s.fail("update_details", persistence(err))
	}

	s.cache.Set(pickup)
	return nil
}

// SetDriverStatus is the manual availability override. It bypasses pickup
// coupling entirely and is always allowed, but it is still logged.
func (s *Service) SetDriverStatus(ctx context.Context, actor Actor, driverID int64, statusRaw string) error {
	status, err := ParseDriverAvailability(statusRaw)
	if err != nil {
		return s.fail("set_driver_status", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return s.fail("set_driver_status", persistence(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := s.drivers.GetByIDTx(ctx, tx, driverID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return s.fail("set_driver_status", fmt.Errorf("driver %d: %w", driverID, ErrNotFound))
		}
		return s.fail("set_driver_status", persistence(err))
	}

	if err := s.drivers.SetAvailabilityTx(ctx, tx, driverID, string(status)); err != nil {
		return s.fail("set_driver_status", persistence(err))
	}

	now := time.Now().UTC()
	msg := fmt.Sprintf("driver #%d availability set to %s", driverID, status)
	if err := s.recordTx(ctx, tx, actor, msg, auditEvent{
		Operation: "set_driver_status",
		DriverID:  driverID,
		Actor:     actor.Username,
		NewStatus: string(status),
		At:        now,
	}); err != nil {
		return s.fail("set_driver_status", persistence(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return s.fail("set_driver_status", persistence(err))
	}
	return nil
}

// applyTransitionEffectsTx carries the coupled driver and order mutations
// for a status edge. The pickup row has already been updated, so active
// counts computed here see the post-transition state.
func (s *Service) applyTransitionEffectsTx(ctx context.Context, tx db.Tx, pickup *repository.Pickup, oldStatus, newStatus PickupStatus, prevDriver *int64) error {
	switch newStatus {
	case StatusCompleted:
		if pickup.AssignedTo != nil {
			driver, err := s.drivers.GetByIDTx(ctx, tx, *pickup.AssignedTo)
			if err != nil {
				return persistence(err)
			}
			if err := s.drivers.IncrementCompletedTx(ctx, tx, driver.UserID); err != nil {
				return persistence(err)
			}
			if err := s.tracker.ReevaluateTx(ctx, tx, driver); err != nil {
				return persistence(err)
			}
		}
		if err := s.orders.UpdateStatusTx(ctx, tx, pickup.OrderID, string(OrderStatusCompleted)); err != nil {
			return persistence(err)
		}

	case StatusCancelled:
		if (oldStatus == StatusAssigned || oldStatus == StatusInTransit) && prevDriver != nil {
			if err := s.reevaluateDriverTx(ctx, tx, *prevDriver); err != nil {
				return err
			}
		}

	case StatusPending:
		if oldStatus == StatusAssigned && prevDriver != nil {
			if err := s.reevaluateDriverTx(ctx, tx, *prevDriver); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) reevaluateDriverTx(ctx context.Context, tx db.Tx, driverID int64) error {
	driver, err := s.drivers.GetByIDTx(ctx, tx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			// Stale driver reference; nothing to re-evaluate.
			return nil
		}
		return persistence(err)
	}
	if err := s.tracker.ReevaluateTx(ctx, tx, driver); err != nil {
		return persistence(err)
	}
	return nil
}

// recordTx appends the activity entry and the audit outbox task inside the
// caller's transaction.
func (s *Service) recordTx(ctx context.Context, tx db.Tx, actor Actor, msg string, event auditEvent) error {
	if err := s.activity.CreateTx(ctx, tx, &repository.ActivityLogEntry{
		UserID:    actor.ref(),
		Message:   msg,
		CreatedAt: event.At,
	}); err != nil {
		return err
	}
	return s.auditTx(ctx, tx, event)
}

func (s *Service) auditTx(ctx context.Context, tx db.Tx, event auditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Topic:   s.auditTopic,
		Payload: payload,
	})
}

func (s *Service) fail(operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	return err
}

func validateSchedule(date time.Time, location string) error {
	if date.IsZero() {
		return fmt.Errorf("%w: pickup date is required", ErrValidation)
	}
	if location == "" {
		return fmt.Errorf("%w: pickup location is required", ErrValidation)
	}
	return nil
}

func sameDriver(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
