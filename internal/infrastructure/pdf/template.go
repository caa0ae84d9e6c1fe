package pdf

import (
	"bytes"
	"html/template"
	"sort"
	"time"

	"quotedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// quoteTemplateHTML is the printable representation of a quote. Chrome's
// print engine turns it into the PDF; the layout is deliberately plain so it
// renders identically headless and in a browser.
const quoteTemplateHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 36px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .meta { color: #666; font-size: 12px; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #ddd; font-size: 13px; }
  th { background: #f5f5f5; text-transform: uppercase; font-size: 11px; letter-spacing: .05em; }
  td.amount, th.amount { text-align: right; }
  tr.total td { font-weight: bold; border-top: 2px solid #1a1a1a; border-bottom: none; }
</style>
</head>
<body>
  <h1>Quote {{ .QuoteID }}</h1>
  <div class="meta">
    {{ if .CompanyName }}{{ .CompanyName }} &middot; {{ end }}{{ if .ContactName }}{{ .ContactName }} &middot; {{ end }}{{ formatDate .Date }}
  </div>
  <table>
    <tr><th>Item</th><th class="amount">Quantity</th><th class="amount">Unit price</th><th class="amount">Subtotal</th></tr>
    {{ range .LineItems }}
    <tr>
      <td>{{ .Category }}</td>
      <td class="amount">{{ .Quantity }}</td>
      <td class="amount">{{ formatMoney .UnitPrice }}</td>
      <td class="amount">{{ formatMoney .Subtotal }}</td>
    </tr>
    {{ end }}
    {{ if not .ImplementationPrice.IsZero }}
    <tr>
      <td>Implementation</td>
      <td class="amount"></td>
      <td class="amount"></td>
      <td class="amount">{{ formatMoney .ImplementationPrice }}</td>
    </tr>
    {{ end }}
    <tr class="total">
      <td>Total</td>
      <td></td>
      <td></td>
      <td class="amount">{{ formatMoney .Total }}</td>
    </tr>
  </table>
</body>
</html>`

var quoteTemplate = template.Must(
	template.New("quote").Funcs(template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
	}).Parse(quoteTemplateHTML),
)

type quoteTemplateLine struct {
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type quoteTemplateData struct {
	QuoteID             string
	CompanyName         string
	ContactName         string
	Date                time.Time
	LineItems           []quoteTemplateLine
	ImplementationPrice decimal.Decimal
	Total               decimal.Decimal
}

// buildQuoteHTML renders the quote document from the aggregate and its
// computed totals. Line subtotals come from Totals (the explicit
// recomputation), listed in category order for a stable document.
func buildQuoteHTML(q entities.Quote, totals entities.Totals) (string, error) {
	categories := make([]string, 0, len(totals.LineSubtotals))
	for category := range totals.LineSubtotals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	lines := make([]quoteTemplateLine, 0, len(q.LineItems))
	for _, category := range categories {
		for _, item := range q.LineItems {
			if item.Category != category {
				continue
			}
			lines = append(lines, quoteTemplateLine{
				Category:  item.Category,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
			})
		}
	}

	data := quoteTemplateData{
		QuoteID:             q.QuoteID,
		CompanyName:         q.CompanyName,
		ContactName:         q.ContactName,
		Date:                time.Now().UTC(),
		LineItems:           lines,
		ImplementationPrice: totals.ImplementationPrice,
		Total:               totals.Total,
	}

	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}
