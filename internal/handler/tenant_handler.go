package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

// TenantHandler handles tenant CRUD endpoints.
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), actor.AdminID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tenant)
}

// Get handles GET /api/v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tenant id")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), actor.AdminID, tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// List handles GET /api/v1/tenants. Accepts an optional status filter.
func (h *TenantHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	status := domain.TenantStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid tenant status")
		return
	}

	offset, limit := parsePagination(c)

	tenants, total, err := h.tenantService.List(c.Request.Context(), actor.AdminID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, tenants, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tenant id")
		return
	}

	var input service.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !input.Status.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid tenant status")
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), actor.AdminID, tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// Delete handles DELETE /api/v1/tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tenant id")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), actor.AdminID, tenantID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
