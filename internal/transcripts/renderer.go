package transcripts

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"filing-backend/internal/filings"
)

// Render writes a one-page PDF transcript for the filing.
func Render(w io.Writer, filing filings.Filing) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 20, fmt.Sprintf("Filing Transcript for %s", filing.CompanyName))
	pdf.Ln(28)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 16, fmt.Sprintf("Status: %s", filing.Status))
	pdf.Ln(20)
	pdf.Cell(0, 16, fmt.Sprintf("Filing date: %s", filing.FilingDate.Format("2006-01-02")))

	return pdf.Output(w)
}
