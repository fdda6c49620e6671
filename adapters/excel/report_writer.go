package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"jurimetrics/domain/report"
	"jurimetrics/ports"
)

const (
	summarySheet = "Summary"
	metricsSheet = "Metrics"
	anomalySheet = "Anomalies"
)

// ReportWriter exports a report as an xlsx workbook: one summary sheet, one
// metrics sheet, one anomaly sheet.
type ReportWriter struct{}

// NewReportWriter creates an xlsx report formatter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

func (w *ReportWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *ReportWriter) Format(rep *report.JudicialBiasReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := w.writeSummary(f, rep); err != nil {
		return nil, err
	}
	if err := w.writeMetrics(f, rep.MetricsTable); err != nil {
		return nil, err
	}
	if err := w.writeAnomalies(f, rep.FlaggedAnomalies); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, rep *report.JudicialBiasReport) error {
	rows := [][]interface{}{
		{"Judge", string(rep.Metadata.JudgeID)},
		{"Jurisdiction", string(rep.Metadata.JurisdictionID)},
		{"Reference date", rep.Metadata.ReferenceDate.Time().Format("2006-01-02")},
		{"Generated", rep.Metadata.GeneratedAt.Time().Format("2006-01-02 15:04")},
		{"Cases analyzed", rep.Metadata.CaseCount},
		{"Confidence", fmt.Sprintf("%s (%.0f%%)", rep.ConfidenceTier.Label, rep.ConfidenceTier.Percentage)},
		{"Limited data", rep.LimitedData},
		{"Data quality", fmt.Sprintf("%.0f/100", rep.DataQuality.OverallQualityScore)},
		{"Executive summary", rep.ExecutiveSummary},
		{"Methodology", strings.Join(rep.MethodologyNotes, " ")},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *ReportWriter) writeMetrics(f *excelize.File, table []report.MetricsRow) error {
	if _, err := f.NewSheet(metricsSheet); err != nil {
		return fmt.Errorf("create metrics sheet: %w", err)
	}

	header := []interface{}{"Category", "Metric", "Judge value", "Baseline", "Deviation (sigma)", "Confidence %", "Sample size", "Interpretation"}
	if err := f.SetSheetRow(metricsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write metrics header: %w", err)
	}

	for i, row := range table {
		var baselineCell, deviationCell interface{}
		if row.BaselineValue != nil {
			baselineCell = *row.BaselineValue
		}
		if row.Deviation != nil {
			deviationCell = *row.Deviation
		}
		values := []interface{}{
			row.Category, row.Metric, row.JudgeValue,
			baselineCell, deviationCell,
			row.Confidence, row.SampleSize, row.Interpretation,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(metricsSheet, cell, &values); err != nil {
			return fmt.Errorf("write metrics row %d: %w", i+2, err)
		}
	}
	return nil
}

func (w *ReportWriter) writeAnomalies(f *excelize.File, anomalies []report.Anomaly) error {
	if _, err := f.NewSheet(anomalySheet); err != nil {
		return fmt.Errorf("create anomaly sheet: %w", err)
	}

	header := []interface{}{"Severity", "Category", "Metric", "Judge value", "Baseline value", "Std deviations", "Description"}
	if err := f.SetSheetRow(anomalySheet, "A1", &header); err != nil {
		return fmt.Errorf("write anomaly header: %w", err)
	}

	for i, a := range anomalies {
		values := []interface{}{
			string(a.Severity), a.Category, a.Metric,
			a.JudgeValue, a.BaselineValue, a.StdDeviations, a.Description,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(anomalySheet, cell, &values); err != nil {
			return fmt.Errorf("write anomaly row %d: %w", i+2, err)
		}
	}
	return nil
}

var _ ports.ReportFormatter = (*ReportWriter)(nil)
