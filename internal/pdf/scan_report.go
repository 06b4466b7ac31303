package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"dermacare/internal/models"
)

// ReportGenerator renders scan reports. An interface is not needed here:
// the generator is stateless apart from the brand strings.
type ReportGenerator struct {
	Brand   string
	SiteURL string
}

func NewReportGenerator(brand, siteURL string) *ReportGenerator {
	if brand == "" {
		brand = "DERMACARE AI"
	}
	if siteURL == "" {
		siteURL = "https://dermacare-ai.com"
	}
	return &ReportGenerator{Brand: brand, SiteURL: siteURL}
}

// ScanReport renders the diagnosis report for one scan and returns the PDF
// bytes.
func (g *ReportGenerator) ScanReport(scan *models.Scan) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(fmt.Sprintf("Scan Report %s", scan.ID), false)
	p.SetAuthor(g.Brand, false)
	p.SetMargins(20, 20, 20)
	p.SetAutoPageBreak(true, 20)
	p.AddPage()

	// ===== Header
	p.SetFont("Helvetica", "B", 22)
	p.SetTextColor(44, 62, 80)
	p.CellFormat(0, 12, g.Brand, "", 1, "L", false, 0, "")

	p.SetFont("Helvetica", "B", 14)
	p.SetTextColor(0, 0, 0)
	p.CellFormat(0, 8, "Skin Diagnosis Report", "", 1, "L", false, 0, "")

	p.SetFont("Helvetica", "", 10)
	sub := fmt.Sprintf("Report ID: %s  |  Date: %s", scan.ID, scan.CreatedAt.Format("2006-01-02"))
	p.CellFormat(0, 6, sub, "", 1, "L", false, 0, "")
	g.hr(p)
	p.Ln(3)

	// ===== Diagnosis block
	g.sectionTitle(p, "Diagnosis")
	g.kvLine(p, "Diagnosis", scan.Diagnosis)
	g.kvLine(p, "Confidence", fmt.Sprintf("%.2f%%", scan.Confidence*100))

	p.SetFont("Helvetica", "", 11)
	p.CellFormat(45, 6, "Severity", "", 0, "L", false, 0, "")
	if scan.IsSafe {
		p.SetTextColor(39, 174, 96)
	} else {
		p.SetTextColor(192, 57, 43)
	}
	p.SetFont("Helvetica", "B", 11)
	p.CellFormat(0, 6, scan.Severity, "", 1, "L", false, 0, "")
	p.SetTextColor(0, 0, 0)

	status := "SAFE"
	if !scan.IsSafe {
		status = "ATTENTION REQUIRED"
	}
	g.kvLine(p, "Status", status)
	p.Ln(2)

	// ===== Scan image
	if scan.ImagePath != "" {
		if _, err := os.Stat(scan.ImagePath); err == nil {
			p.ImageOptions(scan.ImagePath, 140, 50, 50, 50, false,
				gofpdf.ImageOptions{ImageType: "", AllowNegativePosition: false}, 0, "")
		}
	}
	g.hr(p)
	p.Ln(2)

	// ===== Advice
	g.sectionTitle(p, "Medical Advice & Analysis")
	p.SetFont("Helvetica", "", 11)
	p.MultiCell(0, 6, scan.Advice, "", "L", false)
	p.Ln(3)
	g.hr(p)
	p.Ln(2)

	// ===== Actions
	g.sectionTitle(p, "Recommended Actions")
	p.SetFont("Helvetica", "", 11)
	detailsURL := fmt.Sprintf("%s/report/%s", g.SiteURL, scan.ID)
	bookingURL := fmt.Sprintf("%s/book/%s", g.SiteURL, scan.ID)

	p.SetTextColor(41, 128, 185)
	p.CellFormat(0, 6, "1. View full interactive report online", "", 1, "L", false, 0, detailsURL)
	p.CellFormat(0, 6, "2. Book a follow-up appointment", "", 1, "L", false, 0, bookingURL)
	p.SetTextColor(0, 0, 0)
	p.Ln(6)

	// ===== Footer
	p.SetFont("Helvetica", "I", 9)
	p.MultiCell(0, 5,
		"This report is generated automatically from an AI analysis and is not a "+
			"substitute for professional medical advice. Generated "+
			time.Now().Format("2006-01-02 15:04")+".",
		"", "L", false)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("scan report render: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(p *gofpdf.Fpdf, title string) {
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) kvLine(p *gofpdf.Fpdf, key, value string) {
	p.SetFont("Helvetica", "", 11)
	p.SetTextColor(127, 140, 141)
	p.CellFormat(45, 6, key, "", 0, "L", false, 0, "")
	p.SetTextColor(0, 0, 0)
	p.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(p *gofpdf.Fpdf) {
	x, y := p.GetX(), p.GetY()
	p.SetDrawColor(189, 195, 199)
	p.Line(20, y+1, 190, y+1)
	p.SetXY(x, y+3)
}
