package document

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/business"
	"github.com/billfold/billfold/internal/invoices"
	"github.com/billfold/billfold/internal/theme"
)

type stubPDFClient struct {
	lastHTML string
	result   []byte
}

func (s *stubPDFClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	s.lastHTML = html
	return s.result, nil
}

func sampleInvoice() invoices.InvoiceWithItems {
	email := "ada@example.com"
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	inv := invoices.Invoice{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Number:        "INV-0007",
		CustomerName:  "Ada Lovelace",
		CustomerEmail: &email,
		DueDate:       &due,
		Subtotal:      220,
		TaxRate:       10,
		TaxAmount:     22,
		Total:         242,
		Status:        invoices.StatusSent,
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	return invoices.InvoiceWithItems{
		Invoice: inv,
		Items: []invoices.Item{
			{Description: "Consulting", Quantity: 2, UnitPrice: 100, CurrencyCode: "USD", Subtotal: 200},
			{Description: "Hosting", Quantity: 1, UnitPrice: 20, CurrencyCode: "USD", Subtotal: 20},
		},
	}
}

func sampleBusiness() business.Info {
	return business.Info{
		BusinessName:    "Lovelace Consulting",
		DefaultCurrency: "USD",
		TaxRate:         10,
	}
}

func TestRenderHTMLDeterministic(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	th := theme.Default(inv.OwnerID)
	info := sampleBusiness()

	first, err := r.RenderHTML(inv, th, info)
	require.NoError(t, err)
	second, err := r.RenderHTML(inv, th, info)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "INV-0007")
	assert.Contains(t, first, "Ada Lovelace")
	assert.Contains(t, first, "Lovelace Consulting")
	assert.Contains(t, first, "March 15, 2026")
}

func TestRenderHTMLAppliesThemeColors(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	th := theme.Default(inv.OwnerID)
	th.PrimaryColor = "#112233"
	th.AccentColor = "#445566"

	html, err := r.RenderHTML(inv, th, sampleBusiness())
	require.NoError(t, err)
	assert.Contains(t, html, "#112233")
	assert.Contains(t, html, "#445566")
}

func TestRenderHTMLLogoPosition(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	info := sampleBusiness()

	cases := []struct {
		pos  theme.LogoPosition
		want string
	}{
		{pos: theme.LogoLeft, want: "text-align: left;"},
		{pos: theme.LogoCenter, want: "text-align: center;"},
		{pos: theme.LogoRight, want: "text-align: right;"},
	}
	for _, tc := range cases {
		th := theme.Default(inv.OwnerID)
		th.LogoPosition = tc.pos
		html, err := r.RenderHTML(inv, th, info)
		require.NoError(t, err)
		assert.Contains(t, html, tc.want)
	}
}

func TestRenderHTMLSelectsLayoutTemplate(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	info := sampleBusiness()

	for _, layout := range []theme.Layout{theme.LayoutCompact, theme.LayoutStandard, theme.LayoutDetailed} {
		th := theme.Default(inv.OwnerID)
		th.Layout = layout
		html, err := r.RenderHTML(inv, th, info)
		require.NoError(t, err)
		assert.NotEmpty(t, html)
	}
}

func TestRenderHTMLOmitsAbsentSections(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	inv.Notes = nil
	inv.DueDate = nil
	th := theme.Default(inv.OwnerID)

	html, err := r.RenderHTML(inv, th, sampleBusiness())
	require.NoError(t, err)
	assert.NotContains(t, html, "Notes")
	assert.NotContains(t, html, "Due Date")

	notes := "Payment terms: net 30."
	inv.Notes = &notes
	html, err = r.RenderHTML(inv, th, sampleBusiness())
	require.NoError(t, err)
	assert.Contains(t, html, "Payment terms: net 30.")
}

func TestRenderHTMLPerCurrencyTotals(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	inv.Items = append(inv.Items, invoices.Item{Description: "Translation", Quantity: 1, UnitPrice: 50, CurrencyCode: "EUR", Subtotal: 50})
	th := theme.Default(inv.OwnerID)

	html, err := r.RenderHTML(inv, th, sampleBusiness())
	require.NoError(t, err)

	// One totals block per currency, USD before EUR.
	usdIdx := strings.Index(html, "USD 242.00")
	eurIdx := strings.Index(html, "EUR 55.00")
	require.GreaterOrEqual(t, usdIdx, 0)
	require.GreaterOrEqual(t, eurIdx, 0)
	assert.Less(t, usdIdx, eurIdx)
}

func TestRenderPDFUsesClient(t *testing.T) {
	stub := &stubPDFClient{result: []byte("%PDF-1.4")}
	r, err := NewRenderer(stub)
	require.NoError(t, err)

	inv := sampleInvoice()
	th := theme.Default(inv.OwnerID)

	pdf, err := r.RenderPDF(context.Background(), inv, th, sampleBusiness())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Contains(t, stub.lastHTML, "INV-0007")
}

func TestRenderPDFWithoutClient(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	_, err = r.RenderPDF(context.Background(), inv, theme.Default(inv.OwnerID), sampleBusiness())
	require.Error(t, err)
}
