package reports

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"worklog/internal/domain/business"
	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
)

// ExportData is everything the PDF layout needs: the filtered rows, the
// resolved employers for name/bonus lookup, and the precomputed totals.
type ExportData struct {
	Days      []workday.WorkDay
	Employer  *employer.Employer
	Employers []employer.Employer
	Business  business.Details
	Totals    Totals
	From      string
	To        string
	Discount  *Discount
	Final     *DiscountedTotals
}

const (
	pdfLeftMargin  = 10.0
	pdfTableBottom = 265.0
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 24},
	{"Location", 34},
	{"Times", 32},
	{"Hours", 18},
	{"Overtime", 18},
	{"Km", 14},
	{"Bonuses", 28},
	{"Amount", 22},
}

// WritePDF renders the work report: business header, paginated day table,
// totals row, financial summary with optional discount, and the employer
// rate card when the report covers a single employer.
func WritePDF(w io.Writer, data ExportData) error {
	employersByID := make(map[string]*employer.Employer, len(data.Employers))
	for i := range data.Employers {
		employersByID[data.Employers[i].ID] = &data.Employers[i]
	}
	if data.Employer != nil {
		employersByID[data.Employer.ID] = data.Employer
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeftMargin, 12, 10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeReportHeader(pdf, data, true)
	writeTableHeader(pdf)

	for i, day := range data.Days {
		if pdf.GetY() > pdfTableBottom {
			pdf.AddPage()
			writeReportHeader(pdf, data, false)
			writeTableHeader(pdf)
		}
		writeDayRow(pdf, day, employersByID[day.EmployerID], i%2 == 1)
	}
	writeTotalsRow(pdf, data.Totals)

	if pdf.GetY() > pdfTableBottom-50 {
		pdf.AddPage()
	}
	writeFinancialSummary(pdf, data)
	if data.Employer != nil {
		writeRateCard(pdf, data.Employer)
	}

	return pdf.Output(w)
}

func writeReportHeader(pdf *gofpdf.Fpdf, data ExportData, firstPage bool) {
	period := periodLabel(data.From, data.To)

	if !firstPage {
		pdf.SetFont("Helvetica", "B", 12)
		title := "Work Report (continued)"
		if data.Employer != nil {
			title += " - " + data.Employer.Name
		}
		pdf.Cell(0, 8, title)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 6, period)
		pdf.Ln(9)
		return
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Work Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	b := data.Business
	for _, line := range []string{
		b.Name,
		businessNumberLine(b.BusinessNumber),
		b.Address,
		contactLine(b.Phone, b.Email),
		bankLine(b.BankName, b.BankBranch, b.BankAccount),
	} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Period: "+period)
	pdf.Ln(6)
	if data.Employer != nil {
		pdf.Cell(0, 6, "Employer: "+data.Employer.Name)
		pdf.Ln(6)
	}
	pdf.Ln(3)
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func writeDayRow(pdf *gofpdf.Fpdf, day workday.WorkDay, emp *employer.Employer, alternate bool) {
	pdf.SetFont("Helvetica", "", 8)
	if alternate {
		pdf.SetFillColor(249, 250, 251)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}

	values := []string{
		day.Date,
		orDash(dayLocations(day)),
		dayTimeRanges(day),
		formatHours(day.RegularHours + day.OvertimeHours),
		dashUnlessPositive(day.OvertimeHours, formatHours(day.OvertimeHours)),
		dashUnlessPositive(day.Kilometers, trimFloat(day.Kilometers)),
		orDash(bonusNames(day, emp)),
		fmt.Sprintf("%.2f", day.TotalBeforeVat),
	}
	for i, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, clip(values[i], col.width), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeTotalsRow(pdf *gofpdf.Fpdf, totals Totals) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(229, 231, 235)
	values := []string{
		"Total", "", "",
		formatHours(totals.Hours),
		"-",
		dashUnlessPositive(totals.Km, trimFloat(totals.Km)),
		"",
		fmt.Sprintf("%.2f", totals.BeforeVat),
	}
	for i, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, values[i], "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeFinancialSummary(pdf *gofpdf.Fpdf, data ExportData) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Subtotal before VAT: %.2f", data.Totals.BeforeVat))
	pdf.Ln(6)

	vatAmount := data.Totals.WithVat - data.Totals.BeforeVat
	payable := data.Totals.WithVat
	if data.Discount != nil && data.Final != nil && data.Final.DiscountAmount > 0 {
		label := "Discount"
		if data.Discount.Reason != "" {
			label += " (" + data.Discount.Reason + ")"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s: -%.2f", label, data.Final.DiscountAmount))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Subtotal after discount: %.2f", data.Final.BeforeVat))
		pdf.Ln(6)
		vatAmount = data.Final.VatAmount
		payable = data.Final.WithVat
	}

	pdf.Cell(0, 6, fmt.Sprintf("VAT: %.2f", vatAmount))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Total payable: %.2f", payable))
	pdf.Ln(10)
}

func writeRateCard(pdf *gofpdf.Fpdf, emp *employer.Employer) {
	dailyHours := emp.DailyHours
	if dailyHours <= 0 {
		dailyHours = workday.DefaultDailyHours
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(0, 6, "Rates")
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf(
		"Daily (up to %s hours): %.2f | Overtime hour: %.2f | Kilometer: %.2f | VAT: %.1f%%",
		trimFloat(dailyHours), emp.DailyRate, emp.OvertimeRate, emp.KmRate, emp.VatPercent,
	))
	pdf.Ln(5)
	if len(emp.Bonuses) > 0 {
		parts := make([]string, 0, len(emp.Bonuses))
		for _, b := range emp.Bonuses {
			parts = append(parts, fmt.Sprintf("%s: %.2f", b.Name, b.Amount))
		}
		pdf.Cell(0, 5, "Bonuses: "+strings.Join(parts, " | "))
		pdf.Ln(5)
	}
}

func dayLocations(day workday.WorkDay) string {
	locations := make([]string, 0, len(day.Segments))
	seen := make(map[string]bool)
	for _, seg := range day.Segments {
		if seg.Location == "" || seen[seg.Location] {
			continue
		}
		seen[seg.Location] = true
		locations = append(locations, seg.Location)
	}
	if len(locations) == 0 {
		return day.Location
	}
	return strings.Join(locations, ", ")
}

func dayTimeRanges(day workday.WorkDay) string {
	if len(day.Segments) == 0 {
		return day.StartTime + "-" + day.EndTime
	}
	ranges := make([]string, 0, len(day.Segments))
	for _, seg := range day.Segments {
		ranges = append(ranges, seg.StartTime+"-"+seg.EndTime)
	}
	return strings.Join(ranges, ", ")
}

// bonusNames lists the distinct bonus names selected across the day's
// segments. Deduplication applies to the displayed names only, never to the
// charged amounts.
func bonusNames(day workday.WorkDay, emp *employer.Employer) string {
	if emp == nil {
		return ""
	}
	names := make([]string, 0)
	seen := make(map[string]bool)
	for _, id := range day.BonusIDUnion() {
		name, ok := emp.BonusName(id)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func periodLabel(from, to string) string {
	switch {
	case from != "" && to != "":
		return from + " - " + to
	case from != "":
		return "from " + from
	case to != "":
		return "until " + to
	default:
		return "all time"
	}
}

func businessNumberLine(number string) string {
	if number == "" {
		return ""
	}
	return "Business no. " + number
}

func contactLine(phone, email string) string {
	switch {
	case phone != "" && email != "":
		return phone + " | " + email
	case phone != "":
		return phone
	default:
		return email
	}
}

func bankLine(name, branch, account string) string {
	if name == "" && branch == "" && account == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("Bank: %s %s %s", name, branch, account))
}

func formatHours(hours float64) string {
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)
	return fmt.Sprintf("%d:%02d", int(whole), int(minutes))
}

func trimFloat(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func dashUnlessPositive(value float64, formatted string) string {
	if value <= 0 {
		return "-"
	}
	return formatted
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func clip(value string, width float64) string {
	// Rough character budget so long free-text cells don't overflow.
	limit := int(width / 1.7)
	if limit > 3 && len(value) > limit {
		return value[:limit-3] + "..."
	}
	return value
}
