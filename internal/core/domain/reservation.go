package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationPaymentStatus tracks how far along payment for a stay is.
type ReservationPaymentStatus string

const (
	ReservationPending   ReservationPaymentStatus = "pending"
	ReservationConfirmed ReservationPaymentStatus = "confirmed"
	ReservationPaid      ReservationPaymentStatus = "paid"
	ReservationCancelled ReservationPaymentStatus = "cancelled"
)

// Reservation is a guest stay in a unit. Reservations with status paid or
// confirmed whose stay falls entirely inside a statement period count as
// revenue for that period.
type Reservation struct {
	ReservationID string                   `json:"reservationID"` // Primary Key (UUID)
	UnitID        string                   `json:"unitID"`        // FK -> units.unit_id (Not Null)
	GuestID       string                   `json:"guestID"`       // Nullable FK -> users.user_id
	GuestName     string                   `json:"guestName"`
	CheckInDate   time.Time                `json:"checkInDate"`
	CheckOutDate  time.Time                `json:"checkOutDate"`
	TotalPrice    decimal.Decimal          `json:"totalPrice"`
	PaymentStatus ReservationPaymentStatus `json:"paymentStatus"`
	AuditFields
}
