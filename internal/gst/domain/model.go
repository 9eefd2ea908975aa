package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SACCodeITServices is the default service accounting code for information
// technology services.
const SACCodeITServices = "9983"

// RoundingMode selects the level at which monetary rounding is applied.
type RoundingMode string

const (
	// RoundingInvoiceLevel rounds once over the aggregated taxable base.
	RoundingInvoiceLevel RoundingMode = "invoice_level"
	// RoundingLineLevel is reserved; the engine currently aggregates before
	// rounding in both modes.
	RoundingLineLevel RoundingMode = "line_level"
)

// TransactionType classifies a supply for GST purposes.
// The set is closed: consumers must match exhaustively.
type TransactionType string

const (
	TransactionB2B               TransactionType = "B2B"
	TransactionB2C               TransactionType = "B2C"
	TransactionSEZWithPayment    TransactionType = "SEZ_WITH_PAYMENT"
	TransactionSEZWithoutPayment TransactionType = "SEZ_WITHOUT_PAYMENT"
	TransactionExport            TransactionType = "EXPORT"
)

// PlaceOfSupplySource records how the destination state was determined.
type PlaceOfSupplySource string

const (
	POSSourceGSTIN       PlaceOfSupplySource = "GSTIN"
	POSSourceManualState PlaceOfSupplySource = "MANUAL_STATE"
	POSSourceExport      PlaceOfSupplySource = "EXPORT_DEFAULT"
)

// SellerConfig is the immutable per-deployment seller registration.
type SellerConfig struct {
	StateCode    string
	GSTIN        string
	RoundingMode RoundingMode
	// ForceDate pins the computation date, for backdated calculations and tests.
	ForceDate *time.Time
}

// Validate checks the seller registration. An invalid seller must never run a
// calculation, so every failure here is a ConfigError.
func (c SellerConfig) Validate() error {
	if !ValidateGSTIN(c.GSTIN) {
		return &ConfigError{Field: "gstin", Value: c.GSTIN, Message: "seller GSTIN does not match registration format"}
	}
	if !IsKnownStateCode(c.StateCode) {
		return &ConfigError{Field: "state_code", Value: c.StateCode, Message: "unknown seller state code"}
	}
	if c.GSTIN[:2] != c.StateCode {
		return &ConfigError{Field: "state_code", Value: c.StateCode, Message: "seller state code does not match GSTIN prefix"}
	}
	switch c.RoundingMode {
	case "", RoundingInvoiceLevel, RoundingLineLevel:
	default:
		return &ConfigError{Field: "rounding_mode", Value: string(c.RoundingMode), Message: "unknown rounding mode"}
	}
	return nil
}

// CustomerDetails is the per-transaction counterparty input.
type CustomerDetails struct {
	GSTIN     string // optional, empty for unregistered customers
	StateCode string // mandatory when GSTIN is absent and customer is domestic
	IsSEZ     bool
	HasLUT    bool // letter of undertaking: zero-rated SEZ/export supplies
	IsForeign bool
}

// LineItem is a single sold line. Tax is computed over the aggregate of all
// lines, never per line.
type LineItem struct {
	Description string
	SACCode     string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	Discount    decimal.Decimal // absolute amount
}

// Total returns unitPrice*quantity - discount, unrounded.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(li.Quantity).Sub(li.Discount)
}

// ResultMeta is the audit block attached to every TaxResult.
type ResultMeta struct {
	RateApplied          decimal.Decimal     `json:"rate_applied"`
	CalculationTimestamp time.Time           `json:"calculation_timestamp"`
	POSSource            PlaceOfSupplySource `json:"pos_source"`
	LogicTrace           []string            `json:"logic_trace"`
}

// TaxResult is the outcome of one calculation. It is constructed once, never
// mutated, and safe for the caller to serialize and persist.
type TaxResult struct {
	TransactionType   TransactionType `json:"transaction_type"`
	PlaceOfSupply     string          `json:"place_of_supply"`
	PlaceOfSupplyName string          `json:"place_of_supply_name"`
	IsReverseCharge   bool            `json:"is_reverse_charge"`

	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"` // rounded to whole rupee

	// InvoiceNumberSuggestion is advisory only. The authoritative number is
	// assigned by the invoice repository under a unique constraint.
	InvoiceNumberSuggestion string `json:"invoice_number_suggestion"`
	SACCode                 string `json:"sac_code"`

	Meta ResultMeta `json:"meta"`
}

// FiscalYearStart returns the calendar year in which the Indian fiscal year
// (April to March) containing t begins.
func FiscalYearStart(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// FormatInvoiceNumber renders the INV/YY-YY/NNNN numbering scheme.
func FormatInvoiceNumber(fyStartYear int, sequence int64) string {
	yy := fyStartYear % 100
	return fmt.Sprintf("INV/%02d-%02d/%04d", yy, (yy+1)%100, sequence)
}
