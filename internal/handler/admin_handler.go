package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentdesk/internal/service"
)

// AdminHandler handles admin account provisioning. All routes are behind the
// super admin role check.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Create handles POST /api/v1/admins.
func (h *AdminHandler) Create(c *gin.Context) {
	var input service.CreateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !input.Role.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_ROLE", "role must be admin or super_admin")
		return
	}

	admin, err := h.adminService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, admin)
}

// List handles GET /api/v1/admins.
func (h *AdminHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	admins, total, err := h.adminService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, admins, PagMeta{Total: total, Offset: offset, Limit: limit})
}
