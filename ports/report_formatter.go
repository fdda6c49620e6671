package ports

import (
	"jurimetrics/domain/report"
)

// ReportFormatter renders a finished report for an export consumer.
type ReportFormatter interface {
	// ContentType returns the MIME type of the rendered output.
	ContentType() string
	Format(rep *report.JudicialBiasReport) ([]byte, error)
}
