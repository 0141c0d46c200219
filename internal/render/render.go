// Package render produces the two derived representations of an invoice:
// the HTML email body and the PDF document. Both are pure functions of
// their inputs; rendering the same input twice yields identical bytes.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

const dateLayout = "02 Jan 2006"

// Line is a single invoice item to render.
type Line struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Document carries everything the PDF renderer needs. ClientName is the
// snapshot taken at invoice creation, not the client's current name.
type Document struct {
	InvoiceID  string
	ClientName string
	IssueDate  time.Time
	DueDate    time.Time
	Lines      []Line
	Total      float64
}

// EmailBody renders the HTML fragment mailed to the client. The name is the
// client's current one, looked up at send time.
func EmailBody(clientName string, total float64) string {
	return fmt.Sprintf("<h1>Invoice</h1><p>Hi %s, here is your invoice for $%.2f.</p>", clientName, total)
}

// PDF renders the invoice document. An empty line list produces a valid
// document with the header and total only.
func PDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Both timestamps pinned to the issue date and the object catalog sorted,
	// so repeated renders are byte-identical.
	pdf.SetCreationDate(doc.IssueDate)
	pdf.SetModificationDate(doc.IssueDate)
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Invoice")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Billed to: "+doc.ClientName)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issue date: "+doc.IssueDate.Format(dateLayout))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due date: "+doc.DueDate.Format(dateLayout))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Unit price", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)

	for _, line := range doc.Lines {
		pdf.CellFormat(100, 8, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, strconv.FormatFloat(line.Quantity, 'f', -1, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("$%.2f", line.UnitPrice), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("$%.2f", doc.Total), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return buf.Bytes(), nil
}
