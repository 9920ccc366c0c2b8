// Package document renders invoices into styled HTML and, through the
// report client, into PDFs.
package document

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/billfold/billfold/internal/business"
	"github.com/billfold/billfold/internal/invoices"
	"github.com/billfold/billfold/internal/theme"
	"github.com/billfold/billfold/web"
)

// PDFClient exposes the subset of the report client used by the renderer.
type PDFClient interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Style carries the theme values injected into inline styles.
type Style struct {
	Primary     template.CSS
	Secondary   template.CSS
	Accent      template.CSS
	FontFamily  template.CSS
	HeaderAlign template.CSS
}

// Line is one rendered row of the items table.
type Line struct {
	Name     string
	ImageURL string
	Quantity int
	Currency string
	Price    float64
	Amount   float64
}

// Data is the complete view model for one invoice document.
type Data struct {
	Style Style

	BusinessName    string
	BusinessAddress string
	BusinessTaxNo   string
	BusinessPhone   string
	BusinessEmail   string
	LogoURL         string

	Number        string
	CustomerName  string
	CustomerEmail string
	IssuedAt      time.Time
	DueDate       time.Time
	Notes         string

	Items  []Line
	Totals []invoices.CurrencyTotal

	TaxRate float64
}

// Renderer executes the layout templates.
type Renderer struct {
	tpl    *template.Template
	client PDFClient
}

// NewRenderer parses the embedded document templates.
func NewRenderer(client PDFClient) (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"formatAmount": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
	tpl, err := template.New("documents").Funcs(funcMap).ParseFS(web.Templates, "templates/documents/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl, client: client}, nil
}

// RenderHTML produces the document markup for an invoice. Identical inputs
// produce identical output.
func (r *Renderer) RenderHTML(invoice invoices.InvoiceWithItems, th theme.Theme, info business.Info) (string, error) {
	data := buildData(invoice, th, info)
	name := templateName(th.Layout)

	buf := &bytes.Buffer{}
	if err := r.tpl.ExecuteTemplate(buf, name, data); err != nil {
		return "", fmt.Errorf("document: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderPDF converts the rendered HTML into PDF bytes.
func (r *Renderer) RenderPDF(ctx context.Context, invoice invoices.InvoiceWithItems, th theme.Theme, info business.Info) ([]byte, error) {
	if r.client == nil {
		return nil, fmt.Errorf("document: pdf client not configured")
	}
	html, err := r.RenderHTML(invoice, th, info)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, html)
}

func templateName(layout theme.Layout) string {
	switch layout {
	case theme.LayoutCompact:
		return "invoice_compact.html"
	case theme.LayoutDetailed:
		return "invoice_detailed.html"
	default:
		return "invoice_standard.html"
	}
}

func headerAlign(pos theme.LogoPosition) template.CSS {
	switch pos {
	case theme.LogoLeft:
		return "text-align: left;"
	case theme.LogoCenter:
		return "text-align: center;"
	default:
		return "text-align: right;"
	}
}

func buildData(invoice invoices.InvoiceWithItems, th theme.Theme, info business.Info) Data {
	data := Data{
		Style: Style{
			Primary:     template.CSS(th.PrimaryColor),
			Secondary:   template.CSS(th.SecondaryColor),
			Accent:      template.CSS(th.AccentColor),
			FontFamily:  template.CSS(th.FontFamily),
			HeaderAlign: headerAlign(th.LogoPosition),
		},
		BusinessName: info.BusinessName,
		Number:       invoice.Number,
		CustomerName: invoice.CustomerName,
		IssuedAt:     invoice.CreatedAt,
		TaxRate:      invoice.TaxRate,
	}
	if invoice.DueDate != nil {
		data.DueDate = *invoice.DueDate
	}
	if info.Address != nil {
		data.BusinessAddress = *info.Address
	}
	if info.TaxNumber != nil {
		data.BusinessTaxNo = *info.TaxNumber
	}
	if info.Phone != nil {
		data.BusinessPhone = *info.Phone
	}
	if info.Email != nil {
		data.BusinessEmail = *info.Email
	}
	if info.LogoURL != nil {
		data.LogoURL = *info.LogoURL
	}
	if invoice.CustomerEmail != nil {
		data.CustomerEmail = *invoice.CustomerEmail
	}
	if invoice.Notes != nil {
		data.Notes = *invoice.Notes
	}

	inputs := make([]invoices.ItemInput, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		line := Line{
			Name:     item.Description,
			Quantity: item.Quantity,
			Currency: item.CurrencyCode,
			Price:    item.UnitPrice,
			Amount:   item.UnitPrice * float64(item.Quantity),
		}
		if item.ProductImageURL != nil {
			line.ImageURL = *item.ProductImageURL
		}
		data.Items = append(data.Items, line)
		inputs = append(inputs, invoices.ItemInput{
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			CurrencyCode: item.CurrencyCode,
		})
	}
	data.Totals = invoices.AggregateByCurrency(inputs, invoice.TaxRate)
	return data
}
