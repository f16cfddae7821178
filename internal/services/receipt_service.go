package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"busbooking/internal/fare"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a priced booking into a one-page PDF fare receipt.
type ReceiptService struct {
	RequestID string
	Now       func() time.Time
}

func (s ReceiptService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ReceiptService) Render(res BookingResult) ([]byte, string, error) {
	issued := s.now()
	utils.LogEvent(s.RequestID, "receipt", "render",
		fmt.Sprintf("route_no=%s passengers=%d", res.RouteNo, res.TotalPassengers))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fare Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS FARE RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Route        : %s -> %s", safe(res.From, "-"), safe(res.To, "-")),
		fmt.Sprintf("Route No.    : %s", safe(res.RouteNo, "-")),
		fmt.Sprintf("Bus Type     : %s", safe(res.BusType, "-")),
		fmt.Sprintf("Travel Date  : %s", safe(res.Date, "-")),
		fmt.Sprintf("Base Fare    : %s", utils.FormatRupee(res.Summary.BaseFare)),
		fmt.Sprintf("Issued       : %s", utils.FormatDateTime(issued)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(10, 8, "#", "B", 0, "L", false, 0, "")
	pdf.CellFormat(80, 8, "Passenger", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Age", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Band", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Fare", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range res.Summary.Passengers {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, safe(p.Name, "-"), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", p.Age), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, string(fare.Band(p.Age)), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, utils.FormatRupee(p.Fare), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if res.Summary.Discount > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Group Discount (%d%%): -%s",
			int(fare.GroupDiscount*100), utils.FormatRupee(res.Summary.Discount)))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "TOTAL FARE: "+utils.FormatRupee(res.Summary.TotalFare))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt is a fare quote only. No seat has been reserved and no payment has been taken.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(res.RouteNo), issued.Format("20060102150405"))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
