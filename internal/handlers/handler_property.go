package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// PropertyHandler handles property CRUD requests.
type PropertyHandler struct {
	propertyService portssvc.PropertySvcFacade
	unitService     portssvc.UnitSvcFacade
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(ps portssvc.PropertySvcFacade, us portssvc.UnitSvcFacade) *PropertyHandler {
	return &PropertyHandler{propertyService: ps, unitService: us}
}

// registerPropertyRoutes sets up the property routes.
func registerPropertyRoutes(rg *gin.RouterGroup, ps portssvc.PropertySvcFacade, us portssvc.UnitSvcFacade) {
	h := NewPropertyHandler(ps, us)

	properties := rg.Group("/properties")
	{
		properties.POST("", h.CreateProperty)
		properties.GET("", h.ListProperties)
		properties.GET("/:propertyID", h.GetProperty)
		properties.PUT("/:propertyID", h.UpdateProperty)
		properties.GET("/:propertyID/units", h.ListUnits)
	}
}

// CreateProperty godoc
// @Summary Create property
// @Description Creates a property owned by the authenticated user.
// @Tags properties
// @Accept json
// @Produce json
// @Param property body dto.CreatePropertyRequest true "Property"
// @Success 201 {object} dto.PropertyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /properties [post]
// @Security BearerAuth
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	property, err := h.propertyService.CreateProperty(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPropertyResponse(property))
}

// ListProperties godoc
// @Summary List properties
// @Description Lists the authenticated owner's properties.
// @Tags properties
// @Produce json
// @Success 200 {object} dto.ListPropertiesResponse
// @Failure 500 {object} ErrorResponse
// @Router /properties [get]
// @Security BearerAuth
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	properties, err := h.propertyService.ListProperties(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, dto.ListPropertiesResponse{Properties: dto.ToPropertyResponses(properties)})
}

// GetProperty godoc
// @Summary Get property
// @Description Retrieves one property after an ownership check.
// @Tags properties
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /properties/{propertyID} [get]
// @Security BearerAuth
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	property, err := h.propertyService.GetProperty(c.Request.Context(), c.Param("propertyID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to get property")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// UpdateProperty godoc
// @Summary Update property
// @Description Updates property details; listing mirrors refresh on the next unit update.
// @Tags properties
// @Accept json
// @Produce json
// @Param propertyID path string true "Property ID"
// @Param property body dto.UpdatePropertyRequest true "Fields to update"
// @Success 200 {object} dto.PropertyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /properties/{propertyID} [put]
// @Security BearerAuth
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	property, err := h.propertyService.UpdateProperty(c.Request.Context(), c.Param("propertyID"), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// ListUnits godoc
// @Summary List units of a property
// @Description Lists the non-deleted units of a property.
// @Tags units
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.ListUnitsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /properties/{propertyID}/units [get]
// @Security BearerAuth
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	units, err := h.unitService.ListUnits(c.Request.Context(), c.Param("propertyID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list units")
		return
	}
	c.JSON(http.StatusOK, dto.ListUnitsResponse{Units: dto.ToUnitResponses(units)})
}
