package service

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
)

// Per-portal field aliases. Each portal's form posts its own key names; the
// normalizer tries the canonical key first, then the portal's aliases, in
// order. Unknown extra keys are simply ignored.
var portalAliases = map[string]map[string][]string{
	model.TenantPrintersUAE: {
		"requesterName":      {"customerName"},
		"contactNumber":      {"phoneNumber", "customerPhone"},
		"email":              {"customerEmail"},
		"locationAddress":    {"address"},
		"requestDescription": {"complaintDetails"},
		"actionsTaken":       {"workDone"},
		"referenceNumber":    {"jobNumber"},
	},
	model.TenantG3Facility: {
		"requesterName":      {"clientName"},
		"contactNumber":      {"clientPhone"},
		"email":              {"clientEmail"},
		"locationAddress":    {"siteAddress", "buildingAddress"},
		"requestDescription": {"maintenanceRequest"},
		"actionsTaken":       {"workCarriedOut"},
		"referenceNumber":    {"contractNumber"},
	},
	model.TenantITService: {
		"contactNumber":      {"phoneNumber"},
		"requestDescription": {"issueDescription"},
		"actionsTaken":       {"resolutionNotes"},
		"referenceNumber":    {"ticketNumber"},
	},
}

// NormalizeSubmission maps an arbitrary portal payload into the canonical
// work-order record. It never fails: whatever shape the payload has, the
// result is a complete record with every optional field defaulted. Unknown
// keys pass through unread.
func NormalizeSubmission(payload map[string]any, tenant string) *model.WorkOrder {
	t := resolveTenant(payload, tenant)
	branding := model.BrandingFor(t)
	aliases := portalAliases[t]

	field := func(key string) string {
		if v := stringField(payload, key); v != "" {
			return v
		}
		for _, alias := range aliases[key] {
			if v := stringField(payload, alias); v != "" {
				return v
			}
		}
		return ""
	}

	order := &model.WorkOrder{
		RequesterName:        field("requesterName"),
		ContactNumber:        field("contactNumber"),
		Email:                field("email"),
		LocationAddress:      field("locationAddress"),
		CustomerType:         field("customerType"),
		ServiceType:          t,
		ScheduledDateTime:    field("scheduledDateTime"),
		ReferenceNumber:      field("referenceNumber"),
		PriorityLevel:        field("priorityLevel"),
		PaymentMethod:        field("paymentMethod"),
		WorkAssignedTo:       field("workAssignedTo"),
		RequestDescription:   field("requestDescription"),
		ActionsTaken:         field("actionsTaken"),
		WorkPhotos:           normalizePhotos(payload["workPhotos"]),
		WorkCompletedBy:      field("workCompletedBy"),
		CompletionDate:       field("completionDate"),
		TechnicianSignature:  field("technicianSignature"),
		CustomerApprovalName: field("customerApprovalName"),
		CustomerSignature:    field("customerSignature"),
		CustomerApprovalDate: field("customerApprovalDate"),
	}

	if order.CustomerType == "" {
		order.CustomerType = branding.DefaultCustomerType
	}
	// Out-of-vocabulary enum values are treated as not provided.
	if order.PriorityLevel != "" && !model.ValidPriorityLevel(order.PriorityLevel) {
		order.PriorityLevel = ""
	}
	if order.PaymentMethod != "" && !model.ValidPaymentMethod(order.PaymentMethod) {
		order.PaymentMethod = ""
	}

	return order
}

// resolveTenant picks the portal: explicit tag, then the discriminator
// embedded in the payload, then the printers-uae default.
func resolveTenant(payload map[string]any, tenant string) string {
	if model.KnownTenant(tenant) {
		return tenant
	}
	for _, key := range []string{"tenant", "businessUnit", "serviceType"} {
		if v := stringField(payload, key); model.KnownTenant(v) {
			return v
		}
	}
	return model.TenantPrintersUAE
}

// normalizePhotos copies the photo-pair sequence defensively: non-object
// entries are dropped and surviving entries get a generated id if the portal
// sent none. Order is preserved.
func normalizePhotos(raw any) []model.PhotoPair {
	items, ok := raw.([]any)
	if !ok {
		return []model.PhotoPair{}
	}

	photos := make([]model.PhotoPair, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pair := model.PhotoPair{
			ID:          stringField(entry, "id"),
			BeforePhoto: stringField(entry, "beforePhoto"),
			AfterPhoto:  stringField(entry, "afterPhoto"),
		}
		if pair.ID == "" {
			pair.ID = uuid.New().String()
		}
		photos = append(photos, pair)
	}
	return photos
}

// stringField reads a payload value as a string. JSON numbers are rendered
// without a trailing ".0" so numeric reference fields survive the trip
// through a loosely-typed portal form.
func stringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
