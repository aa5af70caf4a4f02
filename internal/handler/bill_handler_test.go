package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
	"rentdesk/internal/handler"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, adminID uuid.UUID, role domain.AdminRole) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextKeyAdminID, adminID)
	c.Set(middleware.ContextKeyRole, string(role))
	return c
}

func TestBillHandler_MarkPaid(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	adminID := uuid.New()
	bill := &domain.Bill{
		ID:          uuid.New(),
		AdminID:     adminID,
		Month:       domain.Month{Year: 2025, Month: time.June},
		TotalAmount: decimal.NewFromInt(1200),
		Status:      domain.BillPaid,
	}

	billSvc.On("MarkPaid", mock.Anything, service.Actor{AdminID: adminID, Role: domain.RoleAdmin}, bill.ID).
		Return(bill, nil)

	w := httptest.NewRecorder()
	c := authedContext(t, w, adminID, domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/"+bill.ID.String()+"/pay", nil)
	c.Params = gin.Params{{Key: "id", Value: bill.ID.String()}}

	h.MarkPaid(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	billSvc.AssertExpectations(t)
}

func TestBillHandler_MarkPaid_AlreadyPaid(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	adminID := uuid.New()
	billID := uuid.New()
	billSvc.On("MarkPaid", mock.Anything, mock.Anything, billID).
		Return(nil, domain.ErrBillAlreadyPaid)

	w := httptest.NewRecorder()
	c := authedContext(t, w, adminID, domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/"+billID.String()+"/pay", nil)
	c.Params = gin.Params{{Key: "id", Value: billID.String()}}

	h.MarkPaid(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ALREADY_PAID", resp.Error.Code)
}

func TestBillHandler_MarkPaid_InvalidID(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	w := httptest.NewRecorder()
	c := authedContext(t, w, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/nope/pay", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.MarkPaid(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	billSvc.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillHandler_MarkPaid_MissingAuthContext(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/x/pay", nil)

	h.MarkPaid(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillHandler_UndoPayment_NotPaid(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	adminID := uuid.New()
	billID := uuid.New()
	billSvc.On("UndoPayment", mock.Anything, mock.Anything, billID).
		Return(nil, domain.ErrBillNotPaid)

	w := httptest.NewRecorder()
	c := authedContext(t, w, adminID, domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/bills/"+billID.String()+"/undo-payment", nil)
	c.Params = gin.Params{{Key: "id", Value: billID.String()}}

	h.UndoPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBillHandler_List_InvalidMonth(t *testing.T) {
	billSvc := new(mocks.MockBillService)
	h := handler.NewBillHandler(billSvc)

	w := httptest.NewRecorder()
	c := authedContext(t, w, uuid.New(), domain.RoleAdmin)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/bills?month=2025-6", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_MONTH", resp.Error.Code)
}
