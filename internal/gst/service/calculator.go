package service

import (
	"fmt"

	"github.com/ledgerline/taxara/internal/clock"
	"github.com/ledgerline/taxara/internal/gst/domain"
	"github.com/shopspring/decimal"
)

// Calculator is the GST determination engine. It holds only immutable
// configuration, so a single instance is safe for concurrent use; every
// Calculate call threads its own trace accumulator.
type Calculator struct {
	cfg   domain.SellerConfig
	rates domain.RateProvider
	clock clock.Clock
}

// NewCalculator validates the seller registration and builds an engine bound
// to it. A nil rate provider falls back to the default rate table.
func NewCalculator(cfg domain.SellerConfig, rates domain.RateProvider, clk clock.Clock) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rates == nil {
		rates = domain.DefaultRateTable()
	}
	if clk == nil {
		clk = clock.System()
	}
	return &Calculator{cfg: cfg, rates: rates, clock: clk}, nil
}

// Config returns the seller configuration the engine was built with.
func (c *Calculator) Config() domain.SellerConfig { return c.cfg }

// Calculate classifies the transaction and computes the CGST/SGST/IGST split
// for the aggregated line items. The decision chain is ordered: place of
// supply, classification, intra/inter split, then the reverse-charge override
// last. Every branch taken is appended to the result's logic trace.
func (c *Calculator) Calculate(customer domain.CustomerDetails, items []domain.LineItem, reverseCharge bool) (*domain.TaxResult, error) {
	var trace []string
	log := func(format string, args ...any) {
		trace = append(trace, fmt.Sprintf(format, args...))
	}

	calcDate := c.clock.Now().UTC()
	if c.cfg.ForceDate != nil {
		calcDate = c.cfg.ForceDate.UTC()
	}
	rate := c.rates.RateFor(calcDate)

	// 1. Place of supply.
	var pos string
	var posSource domain.PlaceOfSupplySource
	switch {
	case customer.IsForeign:
		pos = domain.StateCodeExport
		posSource = domain.POSSourceExport
		log("Customer is foreign -> POS: %s (Export)", pos)
	case customer.GSTIN != "":
		state, err := domain.StateFromGSTIN(customer.GSTIN)
		if err != nil {
			return nil, err
		}
		pos = state
		posSource = domain.POSSourceGSTIN
		log("POS derived from GSTIN (%s) -> %s", customer.GSTIN, pos)
	default:
		if customer.StateCode == "" {
			return nil, &domain.ValidationError{Field: "state_code", Message: "state code required for unregistered customer"}
		}
		if !domain.IsKnownStateCode(customer.StateCode) {
			return nil, &domain.ValidationError{Field: "state_code", Value: customer.StateCode, Message: "unknown state code"}
		}
		pos = customer.StateCode
		posSource = domain.POSSourceManualState
		log("POS used manual state code -> %s", pos)
	}

	// 2. Classification. Export and SEZ always cross a state boundary, so
	// they fix the IGST decision here; LUT zero-rates them.
	txType := domain.TransactionB2C
	applyIGST := false
	multiplier := decimal.NewFromInt(1)

	switch {
	case customer.IsForeign:
		txType = domain.TransactionExport
		applyIGST = true
		if customer.HasLUT {
			multiplier = decimal.Zero
			log("Export with LUT -> zero-rated tax")
		}
	case customer.IsSEZ:
		if customer.HasLUT {
			txType = domain.TransactionSEZWithoutPayment
			multiplier = decimal.Zero
			log("SEZ supply under LUT -> zero tax")
		} else {
			txType = domain.TransactionSEZWithPayment
		}
		applyIGST = true
	case customer.GSTIN != "":
		txType = domain.TransactionB2B
		log("Customer has GSTIN -> B2B transaction")
	}

	// 3. Intra vs inter state, only when step 2 left the decision open.
	if txType == domain.TransactionB2B || txType == domain.TransactionB2C {
		if pos != c.cfg.StateCode {
			applyIGST = true
			log("Inter-state supply: seller(%s) != buyer(%s)", c.cfg.StateCode, pos)
		} else {
			applyIGST = false
			log("Intra-state supply: seller(%s) == buyer(%s)", c.cfg.StateCode, pos)
		}
	}

	// 4. Reverse charge overrides everything before it.
	if reverseCharge {
		multiplier = decimal.Zero
		log("Reverse charge applied -> tax liability shifted to recipient, invoice tax = 0")
	}

	// 5. Aggregate line totals. Rounding happens only at invoice level.
	if len(items) == 0 {
		return nil, &domain.ValidationError{Field: "line_items", Message: "at least one line item is required"}
	}
	taxable := decimal.Zero
	for i, item := range items {
		lineTotal := item.Total()
		if lineTotal.IsNegative() {
			return nil, &domain.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].discount", i),
				Value:   item.Discount.String(),
				Message: "discount exceeds gross line value",
			}
		}
		taxable = taxable.Add(lineTotal)
	}

	// 6. Tax amounts on the unrounded base.
	effectiveRate := rate.Mul(multiplier)
	var cgst, sgst, igst decimal.Decimal
	totalTax := taxable.Mul(effectiveRate)
	if applyIGST {
		igst = totalTax
	} else {
		half := totalTax.Div(decimal.NewFromInt(2))
		cgst = half
		sgst = half
	}

	// 7. Two independent rounding stages: components and total tax to two
	// decimals on their true values, then the grand total to a whole rupee.
	finalTaxable := taxable.Round(2)
	finalTotalTax := totalTax.Round(2)
	totalAmount := finalTaxable.Add(finalTotalTax).Round(0)

	sac := items[0].SACCode
	if sac == "" {
		sac = domain.SACCodeITServices
	}

	return &domain.TaxResult{
		TransactionType:   txType,
		PlaceOfSupply:     pos,
		PlaceOfSupplyName: domain.StateName(pos),
		IsReverseCharge:   reverseCharge,

		TaxableAmount: finalTaxable,
		CGSTAmount:    cgst.Round(2),
		SGSTAmount:    sgst.Round(2),
		IGSTAmount:    igst.Round(2),
		TotalTax:      finalTotalTax,
		TotalAmount:   totalAmount,

		InvoiceNumberSuggestion: domain.FormatInvoiceNumber(domain.FiscalYearStart(calcDate), 0),
		SACCode:                 sac,

		Meta: domain.ResultMeta{
			RateApplied:          effectiveRate,
			CalculationTimestamp: calcDate,
			POSSource:            posSource,
			LogicTrace:           trace,
		},
	}, nil
}
