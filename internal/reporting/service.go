package reporting

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"agromarket/internal/dispatch"
	"agromarket/internal/repository"
	"agromarket/internal/repository/postgresql"
)

type PickupReader interface {
	GetByID(ctx context.Context, id int64) (*repository.Pickup, error)
	ListActive(ctx context.Context) ([]*repository.Pickup, error)
	List(ctx context.Context, filter postgresql.PickupFilter) ([]*repository.Pickup, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*repository.Order, error)
	GetItems(ctx context.Context, orderID int64) ([]*repository.OrderItem, error)
}

type DriverReader interface {
	GetByID(ctx context.Context, userID int64) (*repository.DriverDetails, error)
	ListAll(ctx context.Context) ([]*repository.DriverDetails, error)
	ListAvailable(ctx context.Context) ([]*repository.DriverDetails, error)
}

type ActivityReader interface {
	ListRecent(ctx context.Context, limit int) ([]*repository.ActivityLogEntry, error)
}

// Service is the read-only projection layer consumed by the UI. Reads run
// without transactions and must tolerate a pickup whose driver reference no
// longer resolves.
type Service struct {
	pickups  PickupReader
	orders   OrderReader
	drivers  DriverReader
	activity ActivityReader
}

func NewService(pickups PickupReader, orders OrderReader, drivers DriverReader, activity ActivityReader) *Service {
	return &Service{pickups: pickups, orders: orders, drivers: drivers, activity: activity}
}

const unassignedDriver = "Unassigned"

type LineItemView struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type PickupDetailView struct {
	PickupID      int64          `json:"pickup_id"`
	OrderID       int64          `json:"order_id"`
	ConsumerID    int64          `json:"consumer_id"`
	Status        string         `json:"status"`
	PickupDate    time.Time      `json:"pickup_date"`
	Location      string         `json:"location"`
	ContactPerson string         `json:"contact_person"`
	Notes         string         `json:"notes"`
	DriverID      *int64         `json:"driver_id,omitempty"`
	DriverName    string         `json:"driver_name"`
	Instructions  string         `json:"pickup_instructions"`
	Items         []LineItemView `json:"items"`
	Total         float64        `json:"total"`
}

// GetPickupDetail joins pickup, order, line items and driver into the
// display view. An unresolvable driver reference renders as "Unassigned"
// instead of failing the read.
func (s *Service) GetPickupDetail(ctx context.Context, pickupID int64) (*PickupDetailView, error) {
	pickup, err := s.pickups.GetByID(ctx, pickupID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("pickup %d: %w", pickupID, dispatch.ErrNotFound)
		}
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, pickup.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order %d: %w", pickup.OrderID, dispatch.ErrNotFound)
		}
		return nil, err
	}

	items, err := s.orders.GetItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	view := &PickupDetailView{
		PickupID:      pickup.ID,
		OrderID:       order.ID,
		ConsumerID:    order.ConsumerID,
		Status:        pickup.Status,
		PickupDate:    pickup.PickupDate,
		Location:      pickup.PickupLocation,
		ContactPerson: pickup.ContactPerson,
		Notes:         pickup.PickupNotes,
		DriverID:      pickup.AssignedTo,
		DriverName:    unassignedDriver,
		Instructions:  order.PickupInstructions,
	}

	if pickup.AssignedTo != nil {
		driver, err := s.drivers.GetByID(ctx, *pickup.AssignedTo)
		switch {
		case err == nil:
			view.DriverName = driver.Name
		case errors.Is(err, repository.ErrObjectNotFound):
			// Soft inconsistency: keep the read alive.
		default:
			return nil, err
		}
	}

	for _, item := range items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		view.Items = append(view.Items, LineItemView{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}

type RosterEntry struct {
	Driver          *repository.DriverDetails `json:"driver"`
	ActivePickups   []*repository.Pickup      `json:"active_pickups"`
	ActiveCount     int                       `json:"active_count"`
	OverCapacity    bool                      `json:"over_capacity"`
	CapacityWarning string                    `json:"capacity_warning,omitempty"`
}

// DriverRoster lists every driver with their active assignments. Drivers
// past their max concurrent load get a warning, never a rejection.
func (s *Service) DriverRoster(ctx context.Context) ([]*RosterEntry, error) {
	drivers, err := s.drivers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.pickups.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[int64][]*repository.Pickup)
	for _, pickup := range active {
		if pickup.AssignedTo == nil {
			continue
		}
		byDriver[*pickup.AssignedTo] = append(byDriver[*pickup.AssignedTo], pickup)
	}

	roster := make([]*RosterEntry, 0, len(drivers))
	for _, driver := range drivers {
		entry := &RosterEntry{
			Driver:        driver,
			ActivePickups: byDriver[driver.UserID],
			ActiveCount:   len(byDriver[driver.UserID]),
		}
		if entry.ActiveCount > driver.MaxLoadCapacity {
			entry.OverCapacity = true
			entry.CapacityWarning = fmt.Sprintf("%d active pickups exceed capacity %d",
				entry.ActiveCount, driver.MaxLoadCapacity)
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func (s *Service) ListAvailableDrivers(ctx context.Context) ([]*repository.DriverDetails, error) {
	return s.drivers.ListAvailable(ctx)
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]*repository.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.activity.ListRecent(ctx, limit)
}

var exportHeader = []string{"Pickup ID", "Order ID", "Status", "Date", "Location", "Notes"}

// ExportPickupsCSV streams the filtered pickups as CSV.
func (s *Service) ExportPickupsCSV(ctx context.Context, filter postgresql.PickupFilter, w io.Writer) error {
	pickups, err := s.pickups.List(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, pickup := range pickups {
		record := []string{
			strconv.FormatInt(pickup.ID, 10),
			strconv.FormatInt(pickup.OrderID, 10),
			pickup.Status,
			pickup.PickupDate.UTC().Format(time.RFC3339),
			pickup.PickupLocation,
			pickup.PickupNotes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
