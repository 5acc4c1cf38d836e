package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// UnitHandler handles unit requests. Every mutation also updates the unit's
// marketplace listing inside the service transaction.
type UnitHandler struct {
	unitService        portssvc.UnitSvcFacade
	reservationService portssvc.ReservationSvcFacade
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(us portssvc.UnitSvcFacade, rs portssvc.ReservationSvcFacade) *UnitHandler {
	return &UnitHandler{unitService: us, reservationService: rs}
}

// registerUnitRoutes sets up the unit routes.
func registerUnitRoutes(rg *gin.RouterGroup, us portssvc.UnitSvcFacade, rs portssvc.ReservationSvcFacade) {
	h := NewUnitHandler(us, rs)

	units := rg.Group("/units")
	{
		units.POST("", h.CreateUnit)
		units.GET("/:unitID", h.GetUnit)
		units.PUT("/:unitID", h.UpdateUnit)
		units.PATCH("/:unitID/visibility", h.ToggleVisibility)
		units.DELETE("/:unitID", h.DeleteUnit)
		units.GET("/:unitID/reservations", h.ListReservations)
		units.POST("/:unitID/reservations", h.CreateReservation)
	}
}

// CreateUnit godoc
// @Summary Create unit
// @Description Creates a unit and its marketplace listing atomically. Images are uploaded before the insert.
// @Tags units
// @Accept json
// @Produce json
// @Param unit body dto.CreateUnitRequest true "Unit"
// @Success 201 {object} dto.UnitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /units [post]
// @Security BearerAuth
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	unit, err := h.unitService.CreateUnit(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create unit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUnitResponse(unit))
}

// GetUnit godoc
// @Summary Get unit
// @Description Retrieves one unit after an ownership check. Soft-deleted units report not found.
// @Tags units
// @Produce json
// @Param unitID path string true "Unit ID"
// @Success 200 {object} dto.UnitResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID} [get]
// @Security BearerAuth
func (h *UnitHandler) GetUnit(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	unit, err := h.unitService.GetUnit(c.Request.Context(), c.Param("unitID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to get unit")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// UpdateUnit godoc
// @Summary Update unit
// @Description Updates unit details and refreshes the mirrored listing in the same transaction. Listing visibility is preserved.
// @Tags units
// @Accept json
// @Produce json
// @Param unitID path string true "Unit ID"
// @Param unit body dto.UpdateUnitRequest true "Fields to update"
// @Success 200 {object} dto.UnitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID} [put]
// @Security BearerAuth
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	unit, err := h.unitService.UpdateUnit(c.Request.Context(), c.Param("unitID"), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to update unit")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// ToggleVisibility godoc
// @Summary Toggle unit visibility
// @Description Flips the unit's visibility and mirrors the state onto its listing.
// @Tags units
// @Produce json
// @Param unitID path string true "Unit ID"
// @Success 200 {object} dto.UnitResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID}/visibility [patch]
// @Security BearerAuth
func (h *UnitHandler) ToggleVisibility(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	unit, err := h.unitService.ToggleVisibility(c.Request.Context(), c.Param("unitID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to toggle visibility")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// DeleteUnit godoc
// @Summary Delete unit
// @Description Soft-deletes the unit and deactivates its listing. Deletion is terminal.
// @Tags units
// @Produce json
// @Param unitID path string true "Unit ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID} [delete]
// @Security BearerAuth
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.unitService.SoftDeleteUnit(c.Request.Context(), c.Param("unitID"), ownerID); err != nil {
		respondError(c, err, "Failed to delete unit")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReservations godoc
// @Summary List reservations of a unit
// @Tags reservations
// @Produce json
// @Param unitID path string true "Unit ID"
// @Success 200 {object} dto.ListReservationsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID}/reservations [get]
// @Security BearerAuth
func (h *UnitHandler) ListReservations(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	reservations, err := h.reservationService.ListReservations(c.Request.Context(), c.Param("unitID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, dto.ListReservationsResponse{Reservations: dto.ToReservationResponses(reservations)})
}

// CreateReservation godoc
// @Summary Record reservation
// @Description Records a guest stay against the unit.
// @Tags reservations
// @Accept json
// @Produce json
// @Param unitID path string true "Unit ID"
// @Param reservation body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /units/{unitID}/reservations [post]
// @Security BearerAuth
func (h *UnitHandler) CreateReservation(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	req.UnitID = c.Param("unitID")
	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}
