package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReportKind names an exportable report.
type ReportKind string

const (
	ReportSales   ReportKind = "sales"
	ReportWastage ReportKind = "wastage"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

var (
	ErrUnknownReport     = errors.New("report must be sales or wastage")
	ErrUnsupportedFormat = errors.New("export format is not supported")
)

func ParseReportKind(raw string) (ReportKind, error) {
	switch k := ReportKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case ReportSales, ReportWastage:
		return k, nil
	}
	return "", ErrUnknownReport
}

// ParseFormat accepts csv only. pdf is a known format that is not rendered.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		f = FormatCSV
	}
	if f != FormatCSV {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return f, nil
}

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

func exportFile(kind ReportKind, now time.Time, body []byte) Export {
	return Export{
		Filename:    fmt.Sprintf("%s-report-%s.csv", kind, now.Format("20060102")),
		ContentType: "text/csv; charset=utf-8",
		Body:        body,
	}
}

// RenderSalesCSV writes one row per product followed by a totals row.
func RenderSalesCSV(report SalesReport, breakdown []TopProduct, now time.Time) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"period", "product_id", "product_name", "units_sold", "revenue"}}
	for _, p := range breakdown {
		rows = append(rows, []string{report.Period, p.ProductID, p.ProductName, strconv.Itoa(p.UnitsSold), p.Revenue.StringFixed(2)})
	}
	rows = append(rows, []string{report.Period, "", "TOTAL", strconv.Itoa(report.TotalSales), report.TotalRevenue.StringFixed(2)})
	if err := w.WriteAll(rows); err != nil {
		return Export{}, err
	}
	return exportFile(ReportSales, now, buf.Bytes()), nil
}

// RenderWastageCSV writes one row per write-off.
func RenderWastageCSV(records []WastageFact, now time.Time) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"id", "product_id", "product_name", "sector_id", "quantity", "reason", "cost", "reported_by", "reported_at"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.ProductID, r.ProductName, r.SectorID, strconv.Itoa(r.Quantity), r.Reason,
			r.Cost.StringFixed(2), r.ReportedBy, r.ReportedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return Export{}, err
	}
	return exportFile(ReportWastage, now, buf.Bytes()), nil
}
