package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
)

var csvHeader = []string{
	"ID", "Status", "Requester", "Contact", "Email", "Location",
	"Service Category", "Reference", "Scheduled", "Priority",
	"Payment Method", "Assigned To", "Completed By", "Completion Date",
	"Photos", "Created At",
}

// WorkOrdersCSV renders a tenant's records as CSV, one row per work order.
// Free-text and signature fields stay out of the export.
func WorkOrdersCSV(records []*model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Status,
			r.Order.RequesterName,
			r.Order.ContactNumber,
			r.Order.Email,
			r.Order.LocationAddress,
			r.Order.CustomerType,
			r.Order.ReferenceNumber,
			r.Order.ScheduledDateTime,
			r.Order.PriorityLevel,
			r.Order.PaymentMethod,
			r.Order.WorkAssignedTo,
			r.Order.WorkCompletedBy,
			r.Order.CompletionDate,
			fmt.Sprintf("%d", len(r.Order.WorkPhotos)),
			r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompletionDates returns the distinct non-empty completion dates across
// records, newest first by string order (the portals submit sortable
// ISO-style dates).
func CompletionDates(records []*model.Record) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, r := range records {
		d := r.Order.CompletionDate
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
