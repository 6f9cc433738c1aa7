package quotes

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
)

// DocumentRenderer produces the customer-facing quote HTML used for on-screen
// display, PDF download and the send email body. html/template escaping keeps
// customer-supplied text inert.
type DocumentRenderer struct {
	company config.CompanyConfig
	tmpl    *template.Template
}

// NewDocumentRenderer parses the quote template once at startup.
func NewDocumentRenderer(company config.CompanyConfig) (*DocumentRenderer, error) {
	tmpl, err := template.New("quote").Funcs(template.FuncMap{
		"money": formatMoney,
	}).Parse(quoteTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing quote template: %w", err)
	}
	return &DocumentRenderer{company: company, tmpl: tmpl}, nil
}

type documentData struct {
	Company   config.CompanyConfig
	Quote     *models.Quote
	Reference string
	IssuedAt  string
	Details   []documentDetail
	Items     dbtypes.LineItems
}

type documentDetail struct {
	Label string
	Value string
}

// Render produces deterministic HTML for the given quote.
func (r *DocumentRenderer) Render(quote *models.Quote) (string, error) {
	if quote == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "quote required")
	}

	data := documentData{
		Company:   r.company,
		Quote:     quote,
		Reference: fmt.Sprintf("QT-%s", strings.ToUpper(quote.ID.String()[:8])),
		IssuedAt:  quote.CreatedAt.Format("2 January 2006"),
		Details:   buildDetails(quote),
		Items:     quote.LineItems,
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render quote document")
	}
	return sb.String(), nil
}

func buildDetails(q *models.Quote) []documentDetail {
	details := []documentDetail{
		{Label: "Project type", Value: q.ProjectType},
		{Label: "Area size", Value: q.AreaSize},
		{Label: "Location", Value: q.Location},
	}
	appendOptional := func(label string, value *string) {
		if value != nil && strings.TrimSpace(*value) != "" {
			details = append(details, documentDetail{Label: label, Value: *value})
		}
	}
	appendOptional("Crop type", q.CropType)
	appendOptional("Water source", q.WaterSource)
	appendOptional("Budget range", q.BudgetRange)
	appendOptional("Timeline", q.Timeline)
	return details
}

func formatMoney(v float64) string {
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	var sb strings.Builder
	s := fmt.Sprintf("%d", whole)
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 && ch != '-' {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	return fmt.Sprintf("KES %s.%02d", sb.String(), cents)
}

const quoteTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Quotation {{.Reference}}</title></head>
<body style="font-family: Arial, sans-serif; color: #1f2933; max-width: 760px; margin: 0 auto;">
  <header style="border-bottom: 3px solid #0b7a3e; padding-bottom: 12px;">
    <h1 style="margin: 0; color: #0b7a3e;">{{.Company.Name}}</h1>
    <p style="margin: 2px 0;">{{.Company.Tagline}}</p>
    <p style="margin: 2px 0; font-size: 13px;">{{.Company.Address}} &middot; {{.Company.Phone}} &middot; {{.Company.Email}}</p>
    {{if .Company.VATNumber}}<p style="margin: 2px 0; font-size: 13px;">VAT No: {{.Company.VATNumber}}</p>{{end}}
  </header>

  <section style="margin-top: 20px;">
    <h2 style="margin-bottom: 4px;">Quotation {{.Reference}}</h2>
    <p style="margin: 2px 0;">Date: {{.IssuedAt}}</p>
  </section>

  <section style="margin-top: 16px;">
    <h3 style="margin-bottom: 4px;">Prepared for</h3>
    <p style="margin: 2px 0;">{{.Quote.CustomerName}}</p>
    <p style="margin: 2px 0;">{{.Quote.CustomerEmail}} &middot; {{.Quote.CustomerPhone}}</p>
    {{if .Quote.Address}}<p style="margin: 2px 0;">{{.Quote.Address}}</p>{{end}}
  </section>

  <section style="margin-top: 16px;">
    <h3 style="margin-bottom: 4px;">Project details</h3>
    <table style="font-size: 14px;">
      {{range .Details}}<tr><td style="padding-right: 16px; color: #52606d;">{{.Label}}</td><td>{{.Value}}</td></tr>
      {{end}}
    </table>
  </section>

  <section style="margin-top: 20px;">
    <table style="width: 100%; border-collapse: collapse; font-size: 14px;">
      <thead>
        <tr style="background: #0b7a3e; color: #fff;">
          <th style="text-align: left; padding: 8px;">Item</th>
          <th style="text-align: left; padding: 8px;">Description</th>
          <th style="text-align: right; padding: 8px;">Qty</th>
          <th style="text-align: left; padding: 8px;">Unit</th>
          <th style="text-align: right; padding: 8px;">Unit Price</th>
          <th style="text-align: right; padding: 8px;">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}<tr style="border-bottom: 1px solid #e4e7eb;">
          <td style="padding: 8px;">{{.Name}}</td>
          <td style="padding: 8px;">{{.Description}}</td>
          <td style="padding: 8px; text-align: right;">{{.Quantity}}</td>
          <td style="padding: 8px;">{{.Unit}}</td>
          <td style="padding: 8px; text-align: right;">{{money .UnitPrice}}</td>
          <td style="padding: 8px; text-align: right;">{{money .Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </section>

  <section style="margin-top: 16px; text-align: right; font-size: 14px;">
    <p style="margin: 2px 0;">Subtotal: {{money .Quote.Subtotal}}</p>
    <p style="margin: 2px 0;">VAT (16%): {{money .Quote.VAT}}</p>
    <p style="margin: 2px 0; font-size: 16px; font-weight: bold;">Total: {{money .Quote.Total}}</p>
  </section>

  <section style="margin-top: 24px; font-size: 12px; color: #52606d;">
    <h4 style="margin-bottom: 4px;">Terms</h4>
    <ul style="margin: 0; padding-left: 18px;">
      <li>This quotation is valid for 30 days from the date of issue.</li>
      <li>Prices include VAT at 16%.</li>
      <li>A 50% deposit is required to commence works; balance on completion.</li>
      <li>Delivery and installation timelines are confirmed on order.</li>
    </ul>
  </section>

  <footer style="margin-top: 24px; border-top: 1px solid #e4e7eb; padding-top: 8px; font-size: 12px; color: #52606d;">
    <p>{{.Company.Name}} &middot; {{.Company.WebsiteURL}}</p>
  </footer>
</body>
</html>
`
