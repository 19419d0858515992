package service

import (
	"context"
	"strings"

	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/logger"
)

// Sanitizer deep-cleans a canonical record before it reaches the layout
// engine. The canonical shape is fixed, so the walk is field-by-field rather
// than a generic tree traversal; only the photo-pair sequence is genuinely
// variable-length. The input record is not modified.
type Sanitizer struct {
	// MaxImageBytes is the soft decoded-size threshold per embedded image.
	// Violations are logged and rendering proceeds regardless.
	MaxImageBytes int
}

func NewSanitizer(maxImageBytes int) *Sanitizer {
	if maxImageBytes <= 0 {
		maxImageBytes = 5 * 1024 * 1024
	}
	return &Sanitizer{MaxImageBytes: maxImageBytes}
}

// Sanitize returns a cleaned copy of the record: sentinel strings that
// loosely-typed portals leak ("undefined", "null", "NaN") become empty
// strings, photo pairs with both images blank are dropped, and every
// embedded image is measured against the soft size threshold.
func (s *Sanitizer) Sanitize(ctx context.Context, in *model.WorkOrder) *model.WorkOrder {
	out := *in

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"requesterName", &out.RequesterName},
		{"contactNumber", &out.ContactNumber},
		{"email", &out.Email},
		{"locationAddress", &out.LocationAddress},
		{"customerType", &out.CustomerType},
		{"scheduledDateTime", &out.ScheduledDateTime},
		{"referenceNumber", &out.ReferenceNumber},
		{"priorityLevel", &out.PriorityLevel},
		{"paymentMethod", &out.PaymentMethod},
		{"workAssignedTo", &out.WorkAssignedTo},
		{"requestDescription", &out.RequestDescription},
		{"actionsTaken", &out.ActionsTaken},
		{"workCompletedBy", &out.WorkCompletedBy},
		{"completionDate", &out.CompletionDate},
		{"technicianSignature", &out.TechnicianSignature},
		{"customerApprovalName", &out.CustomerApprovalName},
		{"customerSignature", &out.CustomerSignature},
		{"customerApprovalDate", &out.CustomerApprovalDate},
	} {
		*f.value = cleanString(*f.value)
	}

	s.checkImageSize(ctx, "technicianSignature", out.TechnicianSignature)
	s.checkImageSize(ctx, "customerSignature", out.CustomerSignature)

	// Second, stricter photo filter: the normalizer only drops non-object
	// entries; here pairs with no usable image at all go too.
	photos := make([]model.PhotoPair, 0, len(out.WorkPhotos))
	for _, p := range out.WorkPhotos {
		p.ID = cleanString(p.ID)
		p.BeforePhoto = cleanString(p.BeforePhoto)
		p.AfterPhoto = cleanString(p.AfterPhoto)
		if p.Empty() {
			continue
		}
		s.checkImageSize(ctx, "workPhotos.beforePhoto", p.BeforePhoto)
		s.checkImageSize(ctx, "workPhotos.afterPhoto", p.AfterPhoto)
		photos = append(photos, p)
	}
	out.WorkPhotos = photos

	return &out
}

// checkImageSize warns when an embedded image's decoded size estimate
// exceeds the soft limit. Base64 inflates by roughly 4:3, so three quarters
// of the text length approximates the binary size. Field name only; the
// payload itself never reaches the log.
func (s *Sanitizer) checkImageSize(ctx context.Context, field, data string) {
	if data == "" {
		return
	}
	estimated := len(data) / 4 * 3
	if estimated > s.MaxImageBytes {
		logger.Warn(ctx, "embedded image exceeds soft size limit",
			"field", field,
			"estimated_bytes", estimated,
			"limit_bytes", s.MaxImageBytes,
		)
	}
}

// cleanString trims whitespace and rewrites the sentinel strings that mark
// "field not provided" in the portals' serialization.
func cleanString(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "undefined", "null", "NaN":
		return ""
	}
	return v
}
