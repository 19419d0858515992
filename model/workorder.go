package model

import (
	"time"
)

// WorkOrder is the canonical work-order shape every pipeline stage after
// normalization operates on. Optional fields default to the empty string;
// the renderer substitutes "N/A" at layout time, never earlier.
type WorkOrder struct {
	RequesterName        string      `json:"requesterName"`
	ContactNumber        string      `json:"contactNumber"`
	Email                string      `json:"email"`
	LocationAddress      string      `json:"locationAddress"`
	CustomerType         string      `json:"customerType"`
	ServiceType          string      `json:"serviceType"` // business-unit discriminator
	ScheduledDateTime    string      `json:"scheduledDateTime"`
	ReferenceNumber      string      `json:"referenceNumber"`
	PriorityLevel        string      `json:"priorityLevel"`
	PaymentMethod        string      `json:"paymentMethod"`
	WorkAssignedTo       string      `json:"workAssignedTo"`
	RequestDescription   string      `json:"requestDescription"`
	ActionsTaken         string      `json:"actionsTaken"`
	WorkPhotos           []PhotoPair `json:"workPhotos"`
	WorkCompletedBy      string      `json:"workCompletedBy"`
	CompletionDate       string      `json:"completionDate"`
	TechnicianSignature  string      `json:"technicianSignature"`
	CustomerApprovalName string      `json:"customerApprovalName"`
	CustomerSignature    string      `json:"customerSignature"`
	CustomerApprovalDate string      `json:"customerApprovalDate"`
}

// PhotoPair is one before/after photo entry. Either image may be empty but
// never both; the sanitizer drops pairs that violate this.
type PhotoPair struct {
	ID          string `json:"id"`
	BeforePhoto string `json:"beforePhoto"`
	AfterPhoto  string `json:"afterPhoto"`
}

// Empty reports whether both image fields are blank.
func (p PhotoPair) Empty() bool {
	return p.BeforePhoto == "" && p.AfterPhoto == ""
}

// Payment method enumeration
const (
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank transfer"
	PaymentPOSSale      = "POS Sale"
)

// Priority level enumeration
const (
	PriorityLow    = "Low"
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// ValidPaymentMethod reports whether v is one of the fixed payment methods.
func ValidPaymentMethod(v string) bool {
	switch v {
	case PaymentCash, PaymentBankTransfer, PaymentPOSSale:
		return true
	}
	return false
}

// ValidPriorityLevel reports whether v is one of the fixed priority levels.
func ValidPriorityLevel(v string) bool {
	switch v {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Record is a stored work order: the canonical submission plus store
// metadata. Records feed the CRUD routes, the CSV export and the pre-fill
// path of document generation.
type Record struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Status    string    `json:"status"` // open, in-progress, completed
	Order     WorkOrder `json:"order"`
	PhotoURLs []string  `json:"photo_urls,omitempty"`
	ErrorMsg  string    `json:"error_msg,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record status constants
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Rating is a customer feedback score for a completed work order. Ratings
// live in their own store and never feed document generation.
type Rating struct {
	Tenant      string    `json:"tenant"`
	WorkOrderID string    `json:"work_order_id"`
	Score       int       `json:"score"` // 1..5
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
