package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

// BillingHandler handles the bill generation engine endpoints and the
// per-admin profit views.
type BillingHandler struct {
	generation  service.GenerationService
	billService service.BillService
	reports     service.ReportService
	scheduler   *service.BillingScheduler
}

// NewBillingHandler creates a new BillingHandler. The scheduler may be nil
// when disabled by configuration.
func NewBillingHandler(
	generation service.GenerationService,
	billService service.BillService,
	reports service.ReportService,
	scheduler *service.BillingScheduler,
) *BillingHandler {
	return &BillingHandler{
		generation:  generation,
		billService: billService,
		reports:     reports,
		scheduler:   scheduler,
	}
}

type generateRequest struct {
	Month   string `json:"month"`
	AdminID string `json:"admin_id"`
}

// parseOptionalMonth reads a month from either a JSON body field or a query
// parameter. A zero Month means "current month" downstream.
func parseOptionalMonth(raw string) (domain.Month, error) {
	if raw == "" {
		return domain.Month{}, nil
	}
	return domain.ParseMonth(raw)
}

// Generate handles POST /api/v1/billing/generate.
func (h *BillingHandler) Generate(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	month, err := parseOptionalMonth(req.Month)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Super admins may narrow the run to one admin; everyone else is
	// always scoped to themselves.
	scope := actor.Scope()
	if req.AdminID != "" && actor.Role == domain.RoleSuperAdmin {
		adminID, err := uuid.Parse(req.AdminID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "admin_id must be a valid UUID")
			return
		}
		scope = &adminID
	}

	report, err := h.generation.Generate(c.Request.Context(), month, scope)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Stats handles GET /api/v1/billing/stats.
func (h *BillingHandler) Stats(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	month, err := parseOptionalMonth(c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	stats, err := h.generation.Stats(c.Request.Context(), month, actor.Scope())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// Status handles GET /api/v1/billing/status.
func (h *BillingHandler) Status(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}

	if h.scheduler != nil {
		RespondOK(c, h.scheduler.Status())
		return
	}
	RespondOK(c, domain.SchedulerStatus{RunStatus: h.generation.Status()})
}

// Reset handles POST /api/v1/billing/reset. Super admin only; clears a run
// flag left set by a crashed generation.
func (h *BillingHandler) Reset(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}

	h.generation.ResetRunFlag()
	RespondOK(c, gin.H{"reset": true})
}

// Export handles GET /api/v1/billing/export. Streams the month's bill
// register as an xlsx download.
func (h *BillingHandler) Export(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	month, err := domain.ParseMonth(c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := h.reports.ExportMonth(c.Request.Context(), actor, month)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bill-register-%s.xlsx", month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Archive handles POST /api/v1/billing/archive. Super admin only; uploads
// the month's bill register to object storage.
func (h *BillingHandler) Archive(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	month, err := domain.ParseMonth(req.Month)
	if err != nil {
		HandleError(c, err)
		return
	}

	archived, err := h.reports.ArchiveMonth(c.Request.Context(), actor, month)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, archived)
}

// Profit handles GET /api/v1/profit.
func (h *BillingHandler) Profit(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	total, err := h.billService.Profit(c.Request.Context(), actor.AdminID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"admin_id": actor.AdminID, "total": total})
}

// ReconcileProfit handles GET /api/v1/profit/reconcile.
func (h *BillingHandler) ReconcileProfit(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	result, err := h.billService.ReconcileProfit(c.Request.Context(), actor.AdminID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
