package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/service"
)

// PropertyHandler handles property CRUD endpoints.
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), actor.AdminID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, property)
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property id")
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), actor.AdminID, propertyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, property)
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	properties, total, err := h.propertyService.List(c.Request.Context(), actor, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, properties, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/properties/:id.
func (h *PropertyHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property id")
		return
	}

	var input service.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), actor.AdminID, propertyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, property)
}

// Delete handles DELETE /api/v1/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property id")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), actor.AdminID, propertyID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
