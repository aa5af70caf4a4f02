package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
	"rentdesk/internal/service"
)

// BillHandler handles bill endpoints, including the payment transitions.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles GET /api/v1/bills. Accepts optional month and status filters.
func (h *BillHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var filter port.BillFilter
	if raw := c.Query("month"); raw != "" {
		month, err := domain.ParseMonth(raw)
		if err != nil {
			HandleError(c, err)
			return
		}
		filter.Month = month
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.BillStatus(raw)
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid bill status")
			return
		}
		filter.Status = status
	}

	offset, limit := parsePagination(c)

	bills, total, err := h.billService.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/bills/:id.
func (h *BillHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), actor, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// Create handles POST /api/v1/bills for one-off manual bills.
func (h *BillHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// Delete handles DELETE /api/v1/bills/:id.
func (h *BillHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), actor, billID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkPaid handles POST /api/v1/bills/:id/pay.
func (h *BillHandler) MarkPaid(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.billService.MarkPaid(c.Request.Context(), actor, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// UndoPayment handles POST /api/v1/bills/:id/undo-payment.
func (h *BillHandler) UndoPayment(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.billService.UndoPayment(c.Request.Context(), actor, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}
