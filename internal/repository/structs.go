package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("not found")

type Order struct {
	ID                 int64     `db:"id"`
	ConsumerID         int64     `db:"consumer_id"`
	Status             string    `db:"status"`
	OrderDate          time.Time `db:"order_date"`
	PickupInstructions string    `db:"pickup_instructions"`
}

type OrderItem struct {
	ID          int64   `db:"id"`
	OrderID     int64   `db:"order_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
}

type Pickup struct {
	ID             int64     `db:"id"`
	OrderID        int64     `db:"order_id"`
	Status         string    `db:"status"`
	PickupDate     time.Time `db:"pickup_date"`
	PickupLocation string    `db:"pickup_location"`
	AssignedTo     *int64    `db:"assigned_to"`
	ContactPerson  string    `db:"contact_person"`
	PickupNotes    string    `db:"pickup_notes"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type DriverDetails struct {
	UserID             int64     `db:"user_id"`
	Name               string    `db:"name"`
	AvailabilityStatus string    `db:"availability_status"`
	VehicleType        string    `db:"vehicle_type"`
	VehiclePlate       string    `db:"vehicle_plate"`
	LicenseNumber      string    `db:"license_number"`
	MaxLoadCapacity    int       `db:"max_load_capacity"`
	CurrentLocation    string    `db:"current_location"`
	Rating             float64   `db:"rating"`
	CompletedPickups   int       `db:"completed_pickups"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type ActivityLogEntry struct {
	ID        int64     `db:"id"`
	UserID    *int64    `db:"user_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     string `db:"role"`
}

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusFailed     TaskStatus = "FAILED"
)

type OutboxTask struct {
	ID          uuid.UUID  `db:"id"`
	Status      TaskStatus `db:"status"`
	Payload     []byte     `db:"payload"`
	Topic       string     `db:"topic"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	CompletedAt *time.Time `db:"completed_at"`
}
