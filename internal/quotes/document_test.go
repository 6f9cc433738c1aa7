package quotes

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	dbtypes "github.com/kamaukinuthia/irrigo-backend/pkg/db/types"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
)

func testCompany() config.CompanyConfig {
	return config.CompanyConfig{
		Name:       "IrriGo Irrigation Systems",
		Tagline:    "Smart irrigation for every farm",
		Address:    "Mombasa Road, Nairobi, Kenya",
		Email:      "quotes@irrigo.example",
		Phone:      "+254 700 000000",
		VATNumber:  "P051234567X",
		WebsiteURL: "https://irrigo.example",
	}
}

func sampleQuote() *models.Quote {
	crop := "Tomatoes"
	return &models.Quote{
		ID:            uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		CustomerName:  "Jane Wanjiku",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "+254 711 111111",
		ProjectType:   "drip",
		AreaSize:      "2 acres",
		Location:      "Kiambu",
		CropType:      &crop,
		LineItems: dbtypes.LineItems{
			{ID: "a", Name: "Drip line 16mm", Description: "30cm spacing", Quantity: 500, Unit: "m", UnitPrice: 35, Total: 17500},
		},
		Subtotal:  17500,
		VAT:       2800,
		Total:     20300,
		Status:    enums.QuoteStatusPending,
		CreatedAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderDocumentContainsCoreSections(t *testing.T) {
	renderer, err := NewDocumentRenderer(testCompany())
	require.NoError(t, err)

	html, err := renderer.Render(sampleQuote())
	require.NoError(t, err)

	for _, want := range []string{
		"IrriGo Irrigation Systems",
		"QT-6BA7B810",
		"Jane Wanjiku",
		"Drip line 16mm",
		"KES 17,500.00",
		"VAT (16%): KES 2,800.00",
		"Total: KES 20,300.00",
		"valid for 30 days",
		"P051234567X",
	} {
		require.Contains(t, html, want)
	}
}

func TestRenderDocumentOmitsEmptyOptionalRows(t *testing.T) {
	renderer, err := NewDocumentRenderer(testCompany())
	require.NoError(t, err)

	q := sampleQuote()
	q.CropType = nil
	q.WaterSource = nil

	html, err := renderer.Render(q)
	require.NoError(t, err)
	require.NotContains(t, html, "Crop type")
	require.NotContains(t, html, "Water source")
	require.Contains(t, html, "Project type")
}

func TestRenderDocumentEscapesHostileInput(t *testing.T) {
	renderer, err := NewDocumentRenderer(testCompany())
	require.NoError(t, err)

	q := sampleQuote()
	q.CustomerName = `<script>alert("x")</script>`
	q.LineItems[0].Name = `<img src=x onerror=alert(1)>`

	html, err := renderer.Render(q)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>alert")
	require.NotContains(t, html, "<img src=x")
	require.Contains(t, html, "&lt;script&gt;")
}

func TestRenderDocumentIsDeterministic(t *testing.T) {
	renderer, err := NewDocumentRenderer(testCompany())
	require.NoError(t, err)

	q := sampleQuote()
	first, err := renderer.Render(q)
	require.NoError(t, err)
	second, err := renderer.Render(q)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderDocumentNilQuote(t *testing.T) {
	renderer, err := NewDocumentRenderer(testCompany())
	require.NoError(t, err)

	_, err = renderer.Render(nil)
	require.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "KES 0.00", formatMoney(0))
	require.Equal(t, "KES 1,234.50", formatMoney(1234.5))
	require.Equal(t, "KES 1,000,000.00", formatMoney(1000000))
	require.True(t, strings.HasPrefix(formatMoney(99.999), "KES 100."))
}
