package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetacorp/billing/internal/render"
)

func TestEmailBody(t *testing.T) {
	body := render.EmailBody("Acme", 100)

	assert.Equal(t, "<h1>Invoice</h1><p>Hi Acme, here is your invoice for $100.00.</p>", body)
}

func TestEmailBody_RoundsToTwoDecimals(t *testing.T) {
	body := render.EmailBody("Acme", 99.955)

	assert.Contains(t, body, "$99.96")
}

func testDocument() render.Document {
	return render.Document{
		InvoiceID:  "i1",
		ClientName: "Acme",
		IssueDate:  time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Lines: []render.Line{
			{Description: "Design", Quantity: 2, UnitPrice: 50},
			{Description: "Hosting", Quantity: 1, UnitPrice: 25.5},
		},
		Total: 125.5,
	}
}

func TestPDF(t *testing.T) {
	pdf, err := render.PDF(testDocument())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
	assert.Contains(t, string(pdf[len(pdf)-16:]), "%%EOF")
}

func TestPDF_EmptyItemList(t *testing.T) {
	doc := testDocument()
	doc.Lines = nil

	pdf, err := render.PDF(doc)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	// The itemized section is gone but the document is still complete.
	full, err := render.PDF(testDocument())
	require.NoError(t, err)
	assert.Less(t, len(pdf), len(full))
}

func TestPDF_Deterministic(t *testing.T) {
	first, err := render.PDF(testDocument())
	require.NoError(t, err)

	// Cross a wall-clock second so a stray now()-derived timestamp in the
	// output would show up as a byte difference.
	time.Sleep(1100 * time.Millisecond)

	second, err := render.PDF(testDocument())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPDF_DeterministicAcrossManyRenders(t *testing.T) {
	first, err := render.PDF(testDocument())
	require.NoError(t, err)

	// Repeated renders shake out any ordering that depends on map iteration.
	for i := 0; i < 20; i++ {
		next, err := render.PDF(testDocument())
		require.NoError(t, err)
		require.Equal(t, first, next)
	}
}

func TestPDF_DifferentIssueDatesDiffer(t *testing.T) {
	first, err := render.PDF(testDocument())
	require.NoError(t, err)

	doc := testDocument()
	doc.IssueDate = doc.IssueDate.AddDate(0, 0, 1)

	second, err := render.PDF(doc)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
