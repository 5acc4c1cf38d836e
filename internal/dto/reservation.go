package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// CreateReservationRequest defines the data needed to record a stay.
type CreateReservationRequest struct {
	// UnitID comes from the route path; a body value is ignored.
	UnitID        string                          `json:"unitID"`
	GuestID       string                          `json:"guestID"`
	GuestName     string                          `json:"guestName" binding:"required"`
	CheckInDate   time.Time                       `json:"checkInDate" binding:"required"`
	CheckOutDate  time.Time                       `json:"checkOutDate" binding:"required"`
	TotalPrice    decimal.Decimal                 `json:"totalPrice" binding:"required"`
	PaymentStatus domain.ReservationPaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=pending confirmed paid cancelled"`
}

// ReservationResponse defines the data returned for a reservation.
type ReservationResponse struct {
	ReservationID string                          `json:"reservationID"`
	UnitID        string                          `json:"unitID"`
	GuestName     string                          `json:"guestName"`
	CheckInDate   time.Time                       `json:"checkInDate"`
	CheckOutDate  time.Time                       `json:"checkOutDate"`
	TotalPrice    decimal.Decimal                 `json:"totalPrice"`
	PaymentStatus domain.ReservationPaymentStatus `json:"paymentStatus"`
}

// ListReservationsResponse wraps the list of reservations.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ToReservationResponse converts a domain.Reservation to ReservationResponse DTO.
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ReservationID,
		UnitID:        r.UnitID,
		GuestName:     r.GuestName,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		TotalPrice:    r.TotalPrice,
		PaymentStatus: r.PaymentStatus,
	}
}

// ToReservationResponses converts a slice of domain.Reservation to DTOs.
func ToReservationResponses(reservations []domain.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		res[i] = ToReservationResponse(&r)
	}
	return res
}
