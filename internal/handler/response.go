package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentdesk/internal/domain"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"

	"github.com/sirupsen/logrus"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// "doesn't exist" and "not yours" intentionally look the same.
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrAdminInactive):
		return http.StatusForbidden, "ADMIN_INACTIVE", "admin account is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrInvalidMonth):
		return http.StatusBadRequest, "INVALID_MONTH", "month must be in YYYY-MM format"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "bill amount must be positive"
	case errors.Is(err, domain.ErrDuplicateBill):
		return http.StatusConflict, "DUPLICATE_BILL", "bill already exists for this tenant and month"
	case errors.Is(err, domain.ErrBillAlreadyPaid):
		return http.StatusConflict, "ALREADY_PAID", "bill is already paid"
	case errors.Is(err, domain.ErrBillNotPaid):
		return http.StatusConflict, "NOT_PAID", "bill is not paid"
	case errors.Is(err, domain.ErrGenerationInProgress):
		return http.StatusConflict, "GENERATION_IN_PROGRESS", "a bill generation run is already in progress"
	case errors.Is(err, domain.ErrTenantNotActive):
		return http.StatusBadRequest, "TENANT_NOT_ACTIVE", "tenant is not active"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		logrus.WithField("request_id", requestID).Errorf("internal error: %v", err)
	}
	RespondError(c, status, code, msg)
}

// extractActor extracts the acting admin from the request context. Returns
// false if auth context is missing (error response already written).
func extractActor(c *gin.Context) (service.Actor, bool) {
	adminID, err := middleware.GetAdminID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin context")
		return service.Actor{}, false
	}
	return service.Actor{
		AdminID: adminID,
		Role:    domain.AdminRole(middleware.GetRole(c)),
	}, true
}
