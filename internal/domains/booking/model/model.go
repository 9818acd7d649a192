package model

import (
	"time"

	"staysync/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                     = "id"
	FieldPlatform               = "platform"
	FieldCheckin                = "checkin"
	FieldCheckout               = "checkout"
	FieldPropertyID             = "property_id"
	FieldGuestName              = "guest_name"
	FieldConfirmationCode       = "confirmation_code"
	FieldBlockedOnOtherPlatform = "blocked_on_other_platform"
	FieldErrorMessage           = "error_message"
	FieldUpdatedAt              = "updated_at"
)

const (
	TaskTableName  = "block_tasks"
	TaskEntityName = "block_task"

	FieldBookingID      = "booking_id"
	FieldTargetPlatform = "target_platform"
	FieldStatus         = "status"
	FieldCompletedAt    = "completed_at"
)

// Platform identifies where a reservation originated. Only airbnb and
// booking are valid blocking targets; manual marks walk-in entries created
// through the blocking API.
type Platform string

const (
	PlatformAirbnb  Platform = "airbnb"
	PlatformBooking Platform = "booking"
	PlatformManual  Platform = "manual"
)

func (p Platform) Valid() bool {
	return p == PlatformAirbnb || p == PlatformBooking || p == PlatformManual
}

// Other returns the platform a reservation must be mirrored onto. Manual
// entries have no single counterpart; the caller picks targets explicitly.
func (p Platform) Other() (Platform, bool) {
	switch p {
	case PlatformAirbnb:
		return PlatformBooking, true
	case PlatformBooking:
		return PlatformAirbnb, true
	default:
		return "", false
	}
}

// TaskStatus is the block-task state machine. Transitions only move
// forward: pending -> processing -> completed or failed.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return next == TaskStatusProcessing
	case TaskStatusProcessing:
		return next == TaskStatusCompleted || next == TaskStatusFailed
	default:
		return false
	}
}

type Booking struct {
	ID                     string    `db:"id"`
	Platform               Platform  `db:"platform"`
	Checkin                time.Time `db:"checkin"`
	Checkout               time.Time `db:"checkout"`
	PropertyID             string    `db:"property_id"`
	GuestName              string    `db:"guest_name"`
	ConfirmationCode       string    `db:"confirmation_code"`
	BlockedOnOtherPlatform bool      `db:"blocked_on_other_platform"`
	ErrorMessage           string    `db:"error_message"`
	model.Metadata
}

type BlockTask struct {
	ID             string     `db:"id"`
	BookingID      string     `db:"booking_id"`
	TargetPlatform Platform   `db:"target_platform"`
	Status         TaskStatus `db:"status"`
	ErrorMessage   string     `db:"error_message"`
	CompletedAt    *time.Time `db:"completed_at"`
	model.Metadata
}
