package invoices

// DefaultTaxRate is the flat percentage applied to ad-hoc invoice creation.
const DefaultTaxRate = 10.0

// CurrencyTotal aggregates line items sharing one currency.
type CurrencyTotal struct {
	Currency  string  `json:"currency"`
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// AggregateByCurrency groups items by currency code and computes
// subtotal, tax and total per group. Groups appear in first-seen order and
// an empty item list yields no groups. Values keep full float precision;
// rounding happens at display time only.
func AggregateByCurrency(items []ItemInput, ratePct float64) []CurrencyTotal {
	var order []string
	idx := make(map[string]int)

	for _, item := range items {
		if _, ok := idx[item.CurrencyCode]; !ok {
			idx[item.CurrencyCode] = len(order)
			order = append(order, item.CurrencyCode)
		}
	}

	totals := make([]CurrencyTotal, len(order))
	for i, code := range order {
		totals[i].Currency = code
	}
	for _, item := range items {
		i := idx[item.CurrencyCode]
		totals[i].Subtotal += item.UnitPrice * float64(item.Quantity)
	}
	for i := range totals {
		totals[i].TaxAmount = totals[i].Subtotal * ratePct / 100
		totals[i].Total = totals[i].Subtotal + totals[i].TaxAmount
	}
	return totals
}
