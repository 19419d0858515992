package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var filenameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_ ]`)

// ArtifactFilename derives the deterministic, filesystem-safe name for a
// generated document: WorkOrder_<name>_<timestamp>.pdf. Whitespace in the
// customer name collapses to underscores before anything is stripped, so a
// stray newline or non-breaking space still separates words; everything
// outside [A-Za-z0-9_] is then removed and an empty name falls back to
// "WorkOrder". The timestamp is the generation instant in sortable UTC form
// with colons and periods replaced by dashes.
func ArtifactFilename(customerName string, now time.Time) string {
	// strings.Fields splits on any Unicode whitespace, not just ASCII.
	name := strings.Join(strings.Fields(customerName), " ")
	name = filenameDisallowed.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "WorkOrder"
	}

	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)

	return fmt.Sprintf("WorkOrder_%s_%s.pdf", name, ts)
}
