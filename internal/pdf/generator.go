package pdf

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bhel/hrm/internal/model"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type PDFGenerator struct {
	logger *slog.Logger
}

func NewPDFGenerator(logger *slog.Logger) *PDFGenerator {
	return &PDFGenerator{logger: logger}
}

type PDFOptions struct {
	PaperSize string // "A4" or "A3"
	Landscape bool
}

type RosterData struct {
	Title     string
	Employees []model.Employee
	Leave     map[int][]model.LeaveApplication // keyed by employee id
}

// Generate renders the employee roster to PDF via headless chromium.
func (g *PDFGenerator) Generate(ctx context.Context, data RosterData, opts PDFOptions) ([]byte, error) {
	htmlContent := renderHTML(data, opts)

	width, height := paperDimensions(opts.PaperSize, opts.Landscape)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var pdfBuf []byte
	if err := chromedp.Run(chromeCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0.31).
				WithMarginBottom(0.31).
				WithMarginLeft(0.31).
				WithMarginRight(0.31).
				WithPrintBackground(true).
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	); err != nil {
		return nil, fmt.Errorf("chromedp PDF generation: %w", err)
	}

	return pdfBuf, nil
}

func paperDimensions(paperSize string, landscape bool) (width, height float64) {
	switch paperSize {
	case "A3":
		width, height = 11.69, 16.54
	default: // A4
		width, height = 8.27, 11.69
	}
	if landscape {
		width, height = height, width
	}
	return
}

func leaveStatusLabel(statusID int) string {
	switch statusID {
	case model.LeaveStatusPending:
		return "Pending"
	case model.LeaveStatusApproved:
		return "Approved"
	case model.LeaveStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func formatDay(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

func renderHTML(data RosterData, opts PDFOptions) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Noto Sans', Arial, sans-serif; font-size: 9pt; color: #000; }

.print-page-header {
  display: flex;
  justify-content: space-between;
  align-items: baseline;
  font-size: 8pt;
  border-bottom: 0.5pt solid #999;
  padding-bottom: 1mm;
  margin-bottom: 2mm;
}
.print-title { font-weight: bold; font-size: 10pt; }

.print-roster-table {
  width: 100%;
  border-collapse: collapse;
  font-size: 8pt;
}
.print-roster-table th,
.print-roster-table td {
  border: 0.5pt solid #ccc;
  padding: 1mm 2mm;
  text-align: left;
}
.print-roster-table th { background-color: #f0f0f0; }

.print-leave-block {
  break-inside: avoid;
  margin-top: 1mm;
  padding-left: 4mm;
  font-size: 7pt;
}
.print-leave-line { display: flex; gap: 2mm; }
</style>
</head>
<body>
`)

	b.WriteString(`<div class="print-page-header">`)
	b.WriteString(`<span class="print-title">`)
	b.WriteString(html.EscapeString(data.Title))
	b.WriteString(`</span><span>`)
	b.WriteString(html.EscapeString(formatDay(time.Now())))
	b.WriteString(`</span></div>`)

	employees := make([]model.Employee, len(data.Employees))
	copy(employees, data.Employees)
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].LastName != employees[j].LastName {
			return employees[i].LastName < employees[j].LastName
		}
		return employees[i].FirstName < employees[j].FirstName
	})

	b.WriteString(`<table class="print-roster-table"><thead><tr>`)
	b.WriteString(`<th>ID</th><th>Last Name</th><th>First Name</th><th>IC/Passport</th>`)
	if data.Leave != nil {
		b.WriteString(`<th>Leave</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, e := range employees {
		b.WriteString("<tr>")
		b.WriteString(fmt.Sprintf("<td>%d</td>", e.ID))
		b.WriteString("<td>")
		b.WriteString(html.EscapeString(e.LastName))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(e.FirstName))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(e.ICPassport))
		b.WriteString("</td>")

		if data.Leave != nil {
			b.WriteString("<td>")
			renderLeaveSummary(&b, data.Leave[e.ID])
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	b.WriteString("</body>\n</html>")
	return b.String()
}

func renderLeaveSummary(b *strings.Builder, apps []model.LeaveApplication) {
	if len(apps) == 0 {
		b.WriteString("&nbsp;")
		return
	}

	sorted := make([]model.LeaveApplication, len(apps))
	copy(sorted, apps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	b.WriteString(`<div class="print-leave-block">`)
	for _, l := range sorted {
		b.WriteString(`<div class="print-leave-line"><span>`)
		b.WriteString(html.EscapeString(l.Start.Format("2006-01-02")))
		b.WriteString(" to ")
		b.WriteString(html.EscapeString(l.End.Format("2006-01-02")))
		b.WriteString("</span><span>")
		b.WriteString(html.EscapeString(leaveStatusLabel(l.StatusID)))
		b.WriteString("</span></div>")
	}
	b.WriteString("</div>")
}
