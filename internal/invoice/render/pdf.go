package render

import (
	"fmt"
	"os"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Seller is the registered seller block printed on the invoice header.
type Seller struct {
	LegalName    string
	AddressLine1 string
	City         string
	State        string
	Pincode      string
	GSTIN        string
	PAN          string
	Email        string
	Phone        string
}

// InvoiceInput is everything one document needs. The renderer reads the tax
// result's shape only; it does not care how it was computed.
type InvoiceInput struct {
	InvoiceNumber   string
	Date            time.Time
	CustomerName    string
	CustomerGSTIN   string
	CustomerAddress string
	Description     string
	Seller          Seller
	LogoPath        string
	TaxResult       *gstdomain.TaxResult
}

// PDFRenderer produces the fixed single-page A4 tax invoice. It is stateless;
// one instance serves concurrent calls.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// RenderInvoice lays out the document and returns the complete PDF bytes, or
// an error before any bytes are produced.
func (r *PDFRenderer) RenderInvoice(in InvoiceInput) ([]byte, error) {
	if in.InvoiceNumber == "" {
		return nil, &invoicedomain.RenderError{Field: "invoice_number", Message: "invoice number is required"}
	}
	if in.Date.IsZero() {
		return nil, &invoicedomain.RenderError{Field: "date", Message: "invoice date is required"}
	}
	if in.TaxResult == nil {
		return nil, &invoicedomain.RenderError{Field: "tax_result", Message: "tax result is required"}
	}
	classification, err := classificationLabel(in.TaxResult.TransactionType)
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	res := in.TaxResult

	// Header: optional logo, title block. The logo is best effort; a missing
	// file must not fail rendering.
	if in.LogoPath != "" {
		if _, statErr := os.Stat(in.LogoPath); statErr == nil {
			m.AddRow(20,
				image.NewFromFileCol(3, in.LogoPath, props.Rect{
					Percent: 80,
				}),
				col.New(9),
			)
		}
	}
	m.AddRow(12,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, "Original for Recipient", props.Text{
			Size:  9,
			Align: align.Right,
		}),
	)

	// Seller and invoice meta.
	m.AddRow(36,
		col.New(7).Add(
			text.New(in.Seller.LegalName, props.Text{Size: 11, Style: fontstyle.Bold}),
			text.New(in.Seller.AddressLine1, props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("%s, %s - %s", in.Seller.City, in.Seller.State, in.Seller.Pincode), props.Text{Size: 9, Top: 10}),
			text.New("GSTIN: "+in.Seller.GSTIN, props.Text{Size: 9, Top: 14}),
			text.New("PAN: "+in.Seller.PAN, props.Text{Size: 9, Top: 18}),
			text.New(fmt.Sprintf("Email: %s | Phone: %s", in.Seller.Email, in.Seller.Phone), props.Text{Size: 9, Top: 22}),
		),
		col.New(5).Add(
			text.New("Invoice #: "+in.InvoiceNumber, props.Text{Size: 9}),
			text.New("Date: "+in.Date.Format("2006-01-02"), props.Text{Size: 9, Top: 4}),
			text.New(fmt.Sprintf("Place of Supply: %s - %s", res.PlaceOfSupply, res.PlaceOfSupplyName), props.Text{Size: 9, Top: 8}),
			text.New("Supply Type: "+classification, props.Text{Size: 9, Top: 12}),
		),
	)

	// Customer block.
	m.AddRow(24,
		col.New(12).Add(
			text.New("Bill To:", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New(in.CustomerName, props.Text{Size: 9, Top: 5}),
			text.New(in.CustomerAddress, props.Text{Size: 9, Top: 9}),
			text.New(customerGSTINLine(in.CustomerGSTIN), props.Text{Size: 9, Top: 13}),
		),
	)

	// Single aggregate item row.
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "SAC", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(1, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))
	m.AddRow(10,
		text.NewCol(5, in.Description, props.Text{Size: 9}),
		text.NewCol(2, res.SACCode, props.Text{Size: 9}),
		text.NewCol(1, "1", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, money(res.TaxableAmount.StringFixed(2)), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, money(res.TaxableAmount.StringFixed(2)), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	// Tax summary: only the non-zero components appear. CGST and SGST always
	// show together; IGST shows alone.
	summaryRow(m, "Taxable Amount", money(res.TaxableAmount.StringFixed(2)), false)
	for _, row := range componentRows(res) {
		summaryRow(m, row.Label, money(row.Amount), false)
	}
	summaryRow(m, "Total Tax", money(res.TotalTax.StringFixed(2)), true)
	m.AddRow(2, col.New(6), line.NewCol(6))
	summaryRow(m, "Total Amount", money(res.TotalAmount.StringFixed(0)), true)

	m.AddRow(8,
		text.NewCol(12, "Amount in words: "+AmountInWords(res.TotalAmount.IntPart())+" Only", props.Text{Size: 9}),
	)
	if res.IsReverseCharge {
		m.AddRow(6,
			text.NewCol(12, "Tax payable under reverse charge by the recipient.", props.Text{Size: 8}),
		)
	}

	// Notes and footer.
	m.AddRow(18,
		col.New(12).Add(
			text.New("Notes:", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.New("1. This is a computer-generated invoice and does not require a signature.", props.Text{Size: 7, Top: 4}),
			text.New("2. Payment is non-refundable except as per our refund policy.", props.Text{Size: 7, Top: 8}),
			text.New("3. All disputes are subject to the jurisdiction of courts in "+in.Seller.City+".", props.Text{Size: 7, Top: 12}),
		),
	)
	m.AddRow(10,
		text.NewCol(12, "Thank you for your business!", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("%s | %s | %s", in.Seller.LegalName, in.Seller.Email, in.Seller.Phone), props.Text{
			Size:  7,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// componentRow is one non-zero tax component line in the summary block.
type componentRow struct {
	Label  string
	Amount string
}

func componentRows(res *gstdomain.TaxResult) []componentRow {
	var rows []componentRow
	if res.CGSTAmount.IsPositive() && res.SGSTAmount.IsPositive() {
		halfRate := res.Meta.RateApplied.Mul(hundred).Div(two)
		rows = append(rows,
			componentRow{Label: fmt.Sprintf("CGST (%s%%)", halfRate.StringFixed(2)), Amount: res.CGSTAmount.StringFixed(2)},
			componentRow{Label: fmt.Sprintf("SGST (%s%%)", halfRate.StringFixed(2)), Amount: res.SGSTAmount.StringFixed(2)},
		)
	}
	if res.IGSTAmount.IsPositive() {
		fullRate := res.Meta.RateApplied.Mul(hundred)
		rows = append(rows, componentRow{Label: fmt.Sprintf("IGST (%s%%)", fullRate.StringFixed(2)), Amount: res.IGSTAmount.StringFixed(2)})
	}
	return rows
}

func summaryRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(7,
		col.New(6),
		text.NewCol(3, label+":", props.Text{Size: 9, Style: style}),
		text.NewCol(3, value, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func customerGSTINLine(gstin string) string {
	if gstin == "" {
		return "Unregistered"
	}
	return "GSTIN: " + gstin
}

func money(v string) string {
	return "Rs. " + v
}

// classificationLabel maps every transaction type to its printed label. The
// match is exhaustive: a new classification must be handled here before it
// can be rendered.
func classificationLabel(t gstdomain.TransactionType) (string, error) {
	switch t {
	case gstdomain.TransactionB2B:
		return "B2B", nil
	case gstdomain.TransactionB2C:
		return "B2C", nil
	case gstdomain.TransactionSEZWithPayment:
		return "SEZ (with payment of tax)", nil
	case gstdomain.TransactionSEZWithoutPayment:
		return "SEZ (without payment of tax)", nil
	case gstdomain.TransactionExport:
		return "Export", nil
	default:
		return "", &invoicedomain.RenderError{Field: "transaction_type", Message: fmt.Sprintf("unknown transaction type %q", t)}
	}
}
