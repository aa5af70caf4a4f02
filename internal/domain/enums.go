package domain

// AdminRole defines the back-office operator roles.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r AdminRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// TenantStatus represents the lifecycle of a tenancy.
type TenantStatus string

const (
	TenantActive   TenantStatus = "ACTIVE"
	TenantInactive TenantStatus = "INACTIVE"
	TenantExpired  TenantStatus = "EXPIRED"
)

// Valid reports whether the status is one of the known tenancy states.
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantExpired:
		return true
	}
	return false
}

// BillStatus represents the payment lifecycle of a bill. The payment
// transitions only ever write PENDING and PAID; OVERDUE and RECEIPT_SENT are
// set by other flows and must be tolerated on read.
type BillStatus string

const (
	BillPending     BillStatus = "PENDING"
	BillPaid        BillStatus = "PAID"
	BillOverdue     BillStatus = "OVERDUE"
	BillReceiptSent BillStatus = "RECEIPT_SENT"
)

// Valid reports whether the status is one of the known bill states.
func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillPaid, BillOverdue, BillReceiptSent:
		return true
	}
	return false
}
