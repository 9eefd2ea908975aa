package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/ledgerline/taxara/internal/audit/domain"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
)

type issueInvoiceRequest struct {
	Customer        customerRequest   `json:"customer"`
	CustomerName    string            `json:"customer_name"`
	CustomerAddress string            `json:"customer_address"`
	LineItems       []lineItemRequest `json:"line_items"`
	Description     string            `json:"description"`
	ReverseCharge   bool              `json:"reverse_charge"`
}

// IssueInvoice calculates, assigns the authoritative number and persists.
func (s *Server) IssueInvoice(c *gin.Context) {
	var req issueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Issue(c.Request.Context(), invoicedomain.IssueRequest{
		Customer:      req.Customer.toDomain(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerAddr:  strings.TrimSpace(req.CustomerAddress),
		LineItems:     s.toDomainItems(req.LineItems),
		Description:   strings.TrimSpace(req.Description),
		ReverseCharge: req.ReverseCharge,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.Calculations.WithLabelValues(string(resp.TaxResult.TransactionType)).Inc()
	s.metrics.InvoicesIssued.Inc()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// InvoiceDocument re-renders the stored invoice and streams the PDF.
func (s *Server) InvoiceDocument(c *gin.Context) {
	doc, err := s.invoiceSvc.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		var rErr *invoicedomain.RenderError
		if errors.As(err, &rErr) {
			s.metrics.RenderFailures.Inc()
		}
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) ListCalculationAudits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListFilter{
		TransactionType: strings.TrimSpace(c.Query("transaction_type")),
		Limit:           limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
