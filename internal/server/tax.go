package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	"github.com/shopspring/decimal"
)

type customerRequest struct {
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
	IsSEZ     bool   `json:"is_sez"`
	HasLUT    bool   `json:"has_lut"`
	IsForeign bool   `json:"is_foreign"`
}

type lineItemRequest struct {
	Description string          `json:"description"`
	SACCode     string          `json:"sac_code"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
}

type calculateTaxRequest struct {
	Customer      customerRequest   `json:"customer"`
	LineItems     []lineItemRequest `json:"line_items"`
	ReverseCharge bool              `json:"reverse_charge"`
}

func (r customerRequest) toDomain() gstdomain.CustomerDetails {
	return gstdomain.CustomerDetails{
		GSTIN:     strings.ToUpper(strings.TrimSpace(r.GSTIN)),
		StateCode: strings.TrimSpace(r.StateCode),
		IsSEZ:     r.IsSEZ,
		HasLUT:    r.HasLUT,
		IsForeign: r.IsForeign,
	}
}

// toDomainItems maps request lines, filling the deployment's default SAC
// where a line carries none.
func (s *Server) toDomainItems(items []lineItemRequest) []gstdomain.LineItem {
	out := make([]gstdomain.LineItem, 0, len(items))
	for _, item := range items {
		sac := strings.TrimSpace(item.SACCode)
		if sac == "" {
			sac = s.cfg.SACCode
		}
		out = append(out, gstdomain.LineItem{
			Description: strings.TrimSpace(item.Description),
			SACCode:     sac,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Discount:    item.Discount,
		})
	}
	return out
}

// CalculateTax runs the engine without persisting anything.
func (s *Server) CalculateTax(c *gin.Context) {
	var req calculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.calc.Calculate(req.Customer.toDomain(), s.toDomainItems(req.LineItems), req.ReverseCharge)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.Calculations.WithLabelValues(string(result.TransactionType)).Inc()
	c.JSON(http.StatusOK, gin.H{"data": result})
}
