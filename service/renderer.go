package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/logger"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/pdfbuilder"
)

// Renderer turns a sanitized canonical record into a binary document. It is
// an interface so the pipeline can be exercised with a faulty renderer in
// tests.
type Renderer interface {
	Render(ctx context.Context, order *model.WorkOrder) ([]byte, error)
}

// DocumentRenderer lays out the fixed five-section work-order receipt:
// Customer Details, Order Details, Assignment, Work Description & Photos,
// Approval & Signatures. The record is read-only here; missing optional
// data renders as "N/A" and never fails the layout.
type DocumentRenderer struct{}

func NewDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{}
}

func (r *DocumentRenderer) Render(ctx context.Context, order *model.WorkOrder) ([]byte, error) {
	branding := model.BrandingFor(order.ServiceType)

	b := pdfbuilder.New(pdfbuilder.Options{
		Title:       branding.DocumentTitle,
		BrandName:   branding.Name,
		Monogram:    branding.Monogram,
		Accent:      pdfbuilder.RGB(branding.Accent),
		AccentLight: pdfbuilder.RGB(branding.AccentLight),
		FooterLines: []string{
			fmt.Sprintf("Tel %s   Mobile %s   %s", branding.Phone, branding.Mobile, branding.Email),
			branding.Locations[0],
			branding.Locations[1],
		},
	})
	b.AddPage()

	r.customerDetails(b, order)
	r.orderDetails(b, order)
	r.assignment(b, order)
	r.workSection(ctx, b, order)
	r.approval(ctx, b, order)

	return b.Output()
}

func (r *DocumentRenderer) customerDetails(b *pdfbuilder.Builder, order *model.WorkOrder) {
	b.SectionTitle("Customer Details")
	b.KeyValue("Customer Name", orNA(order.RequesterName))
	b.KeyValue("Contact Number", orNA(order.ContactNumber))
	b.KeyValue("Email", orNA(order.Email))
	b.KeyValue("Location", orNA(order.LocationAddress))
}

func (r *DocumentRenderer) orderDetails(b *pdfbuilder.Builder, order *model.WorkOrder) {
	b.SectionTitle("Order Details")
	b.KeyValue("Service Category", orNA(order.CustomerType))
	b.KeyValue("Reference Number", orNA(order.ReferenceNumber))
	b.KeyValue("Scheduled", orNA(formatDateTime(order.ScheduledDateTime)))
	b.KeyValue("Priority", orNA(order.PriorityLevel))
	b.KeyValue("Payment Method", orNA(order.PaymentMethod))
}

func (r *DocumentRenderer) assignment(b *pdfbuilder.Builder, order *model.WorkOrder) {
	b.SectionTitle("Assignment")
	b.KeyValue("Assigned To", orNA(order.WorkAssignedTo))
}

func (r *DocumentRenderer) workSection(ctx context.Context, b *pdfbuilder.Builder, order *model.WorkOrder) {
	b.SectionTitle("Work Description & Photos")
	b.Paragraph("Request Description", orNA(order.RequestDescription))
	b.Paragraph("Actions Taken", orNA(order.ActionsTaken))

	// Sanitized pairs always carry at least one image; pairs render in
	// submission order, one visual block each. No pairs, no photo block.
	for i, photo := range order.WorkPhotos {
		before := decodeEmbeddedImage(ctx, fmt.Sprintf("workPhotos[%d].beforePhoto", i), photo.BeforePhoto)
		after := decodeEmbeddedImage(ctx, fmt.Sprintf("workPhotos[%d].afterPhoto", i), photo.AfterPhoto)
		if before == nil && after == nil {
			continue
		}
		b.ImagePair(fmt.Sprintf("Photo %d", i+1), before, after)
	}
}

func (r *DocumentRenderer) approval(ctx context.Context, b *pdfbuilder.Builder, order *model.WorkOrder) {
	b.SectionTitle("Approval & Signatures")
	b.KeyValue("Completed By", orNA(order.WorkCompletedBy))
	b.KeyValue("Completion Date", orNA(formatLongDate(order.CompletionDate)))
	b.Spacer(2)

	techSig := decodeEmbeddedImage(ctx, "technicianSignature", order.TechnicianSignature)
	b.SignatureBlock("Technician Signature", techSig,
		orNA(order.WorkCompletedBy), orNA(formatLongDate(order.CompletionDate)))

	custSig := decodeEmbeddedImage(ctx, "customerSignature", order.CustomerSignature)
	b.SignatureBlock("Customer Approval", custSig,
		orNA(order.CustomerApprovalName), orNA(formatLongDate(order.CustomerApprovalDate)))
}

// orNA substitutes the literal placeholder for absent optional data.
func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// decodeEmbeddedImage decodes a base64 (optionally data-URI wrapped) image
// payload. Data the engine cannot possibly decode is skipped with a warning
// rather than failing the render; the portals routinely submit stray
// placeholder strings in image fields.
func decodeEmbeddedImage(ctx context.Context, field, data string) []byte {
	if data == "" {
		return nil
	}
	if i := strings.Index(data, "base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(data))
	}
	if err != nil {
		logger.Warn(ctx, "skipping undecodable embedded image", "field", field)
		return nil
	}
	return raw
}

// Date layouts the portals are known to submit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// formatLongDate renders a date long-form ("January 5, 2025"). Unparseable
// values pass through as-is.
func formatLongDate(v string) string {
	if t, ok := parseDate(v); ok {
		return t.Format("January 2, 2006")
	}
	return v
}

// formatDateTime renders a datetime short-form ("Jan 5, 2025 14:30").
// Date-only values omit the time part.
func formatDateTime(v string) string {
	if t, ok := parseDate(v); ok {
		if t.Hour() == 0 && t.Minute() == 0 {
			return t.Format("Jan 2, 2006")
		}
		return t.Format("Jan 2, 2006 15:04")
	}
	return v
}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
