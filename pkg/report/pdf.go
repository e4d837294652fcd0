package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/content"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// DefaultPDFTitle is used when the caller doesn't set a title
const DefaultPDFTitle = "Cybersecurity News Report"

// PDF renders the report: title, executive summary, severity table and items grouped by category
func (b *Builder) PDF(ctx context.Context, items []domain.NewsItem, title string) ([]byte, error) {
	if title == "" {
		title = DefaultPDFTitle
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("cybernews", true)
	pdf.SetMargins(15, 15, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 139)
	pdf.MultiCell(0, 9, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Generated on: "+b.now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(139, 0, 0)
		pdf.MultiCell(0, 8, tr(text), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	heading("Executive Summary")
	pdf.MultiCell(0, 5, tr(b.Digest(ctx, items)), "", "L", false)
	pdf.Ln(6)

	heading("Threat Statistics")
	stats := agent.SeverityStats(items)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(60, 8, "Severity Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Count", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	rows := [][2]string{
		{"High", strconv.Itoa(stats[domain.SeverityHigh])},
		{"Medium", strconv.Itoa(stats[domain.SeverityMedium])},
		{"Low", strconv.Itoa(stats[domain.SeverityLow])},
		{"Total", strconv.Itoa(len(items))},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, row[1], "1", 1, "C", true, 0, "")
	}
	pdf.Ln(6)

	categorized := agent.Categorize(items)
	for _, c := range domain.Categories {
		if len(categorized[c]) == 0 {
			continue
		}
		heading(string(c))
		for _, item := range categorized[c] {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(item.Title), "", "L", false)
			pdf.SetFont("Helvetica", "", 9)
			details := fmt.Sprintf("Source: %s | Severity: %s | Published: %s", item.Source, item.Severity,
				item.PublishedAt.Format("2006-01-02 15:04"))
			pdf.MultiCell(0, 5, tr(details), "", "L", false)
			body := item.Summary
			if body == "" {
				body = content.Truncate(item.Content, 300) + "..."
			}
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(body), "", "L", false)
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
