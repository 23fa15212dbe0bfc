package ticket

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const timeLayout = "02 Jan 2006 15:04 MST"

// Render draws a single-page A4 e-ticket with a QR code of the booking
// reference.
func Render(d domain.BookingDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := latin(pdf.UnicodeTranslatorFromDescriptor(""))

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "ELECTRONIC TICKET")
	pdf.Ln(18)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "BOOKING")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Reference: %s", d.Booking.BookingReference),
		fmt.Sprintf("Status: %s", strings.ToUpper(string(d.Booking.Status))),
		fmt.Sprintf("Seat: %s", d.Booking.SeatNumber),
		fmt.Sprintf("Total price: %d", d.Booking.TotalPrice),
		fmt.Sprintf("Booked: %s", d.Booking.BookingDate.UTC().Format(timeLayout)),
	} {
		pdf.SetX(20)
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(7)
	}

	qr, err := qrcode.Encode(d.Booking.BookingReference, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 63)

	drawSectionTitle(pdf, "FLIGHT")
	pdf.SetFont("Helvetica", "", 12)
	writeLines(pdf, tr,
		fmt.Sprintf("%s  %s", d.Flight.FlightNumber, d.Flight.Airline),
		fmt.Sprintf("From: %s   Departs: %s", d.Flight.Origin, d.Flight.DepartureTime.UTC().Format(timeLayout)),
		fmt.Sprintf("To:   %s   Arrives: %s", d.Flight.Destination, d.Flight.ArrivalTime.UTC().Format(timeLayout)),
	)
	pdf.Ln(4)

	drawSectionTitle(pdf, "PASSENGER")
	pdf.SetFont("Helvetica", "", 12)
	writeLines(pdf, tr,
		fmt.Sprintf("Name: %s", d.Passenger.FullName()),
		fmt.Sprintf("Passport: %s", d.Passenger.PassportNumber),
		fmt.Sprintf("Email: %s", d.Passenger.Email),
	)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Present this ticket and your passport at check-in.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// latin converts UTF-8 text to the cp1252 bytes the core fonts expect.
// Runes the code page lacks become '?'.
func latin(tr func(string) string) func(string) string {
	return func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if r < utf8.RuneSelf {
				b.WriteRune(r)
				continue
			}
			if out := tr(string(r)); len(out) == 1 && out[0] >= utf8.RuneSelf {
				b.WriteByte(out[0])
				continue
			}
			b.WriteByte('?')
		}
		return b.String()
	}
}

// Filename is the download name used for a booking's ticket.
func Filename(reference string) string {
	return fmt.Sprintf("ticket-%s.pdf", reference)
}

func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}

func writeLines(pdf *gofpdf.Fpdf, tr func(string) string, lines ...string) {
	for _, line := range lines {
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(6)
	}
}
