package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	auditdomain "github.com/ledgerline/taxara/internal/audit/domain"
	auditrepository "github.com/ledgerline/taxara/internal/audit/repository"
	auditservice "github.com/ledgerline/taxara/internal/audit/service"
	"github.com/ledgerline/taxara/internal/clock"
	"github.com/ledgerline/taxara/internal/config"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	gstservice "github.com/ledgerline/taxara/internal/gst/service"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"github.com/ledgerline/taxara/internal/invoice/render"
	invoicerepository "github.com/ledgerline/taxara/internal/invoice/repository"
	invoiceservice "github.com/ledgerline/taxara/internal/invoice/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// promauto registers against the default registry; one Metrics per binary.
var (
	metricsOnce sync.Once
	testMetrics *Metrics
)

func sharedMetrics() *Metrics {
	metricsOnce.Do(func() { testMetrics = NewMetrics() })
	return testMetrics
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}, &auditdomain.CalculationAudit{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC))

	seller := gstdomain.SellerConfig{
		StateCode:    "27",
		GSTIN:        "27ABCDE1234F1Z5",
		RoundingMode: gstdomain.RoundingInvoiceLevel,
	}
	calc, err := gstservice.NewCalculator(seller, nil, clk)
	require.NoError(t, err)

	cfg := config.Config{
		Seller: config.SellerIdentity{
			LegalName: "Taxara Labs Private Limited",
			City:      "Mumbai",
			State:     "Maharashtra",
			StateCode: "27",
			GSTIN:     "27ABCDE1234F1Z5",
		},
	}

	audit := auditservice.NewService(auditservice.ServiceParam{
		DB:         db,
		Log:        log,
		GenID:      node,
		Repository: auditrepository.Provide(),
	})
	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:         db,
		Log:        log,
		GenID:      node,
		Config:     cfg,
		Clock:      clk,
		Calculator: calc,
		Renderer:   render.NewPDFRenderer(),
		Repository: invoicerepository.Provide(),
		Audit:      audit,
	})

	srv := NewServer(ServerParams{
		Log:        log,
		Config:     cfg,
		Engine:     NewEngine(cfg),
		Calculator: calc,
		InvoiceSvc: invoiceSvc,
		AuditSvc:   audit,
		Metrics:    sharedMetrics(),
	})
	srv.RegisterRoutes()
	return srv.engine
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func calculationBody() map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"gstin": "27AAACI9260R1Z4",
		},
		"line_items": []map[string]any{
			{
				"description": "SaaS subscription",
				"sac_code":    "9983",
				"unit_price":  "10000",
				"quantity":    "1",
			},
		},
	}
}

func TestCalculateTax_IntraStateB2B(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/v1/tax/calculations", calculationBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data gstdomain.TaxResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, gstdomain.TransactionB2B, resp.Data.TransactionType)
	assert.Equal(t, "27", resp.Data.PlaceOfSupply)
	assert.Equal(t, "900", resp.Data.CGSTAmount.String())
	assert.Equal(t, "900", resp.Data.SGSTAmount.String())
	assert.Equal(t, "11800", resp.Data.TotalAmount.String())
}

func TestCalculateTax_ValidationErrorMapsTo400(t *testing.T) {
	r := newTestServer(t)

	body := calculationBody()
	body["customer"] = map[string]any{"gstin": "27ABCDE1234F1X5"}

	w := doJSON(t, r, http.MethodPost, "/v1/tax/calculations", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "gstin", resp.Error.Errors[0].Field)
}

func TestCalculateTax_MalformedBody(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/tax/calculations", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueInvoice_ThenFetchDocument(t *testing.T) {
	r := newTestServer(t)

	body := calculationBody()
	body["customer_name"] = "Acme Corp"
	body["description"] = "SaaS subscription (June 2025)"

	w := doJSON(t, r, http.MethodPost, "/v1/invoices", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data invoicedomain.IssueResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INV/25-26/0001", resp.Data.InvoiceNumber)

	got := doJSON(t, r, http.MethodGet, "/v1/invoices/"+resp.Data.InvoiceID.String(), nil)
	assert.Equal(t, http.StatusOK, got.Code)

	doc := doJSON(t, r, http.MethodGet, "/v1/invoices/"+resp.Data.InvoiceID.String()+"/document", nil)
	require.Equal(t, http.StatusOK, doc.Code)
	assert.Equal(t, "application/pdf", doc.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(doc.Body.Bytes(), []byte("%PDF-")))
}

func TestGetInvoice_NotFound(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/v1/invoices/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Type)
}

func TestListCalculationAudits(t *testing.T) {
	r := newTestServer(t)

	body := calculationBody()
	body["customer_name"] = "Acme Corp"
	body["description"] = "SaaS subscription"
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/v1/invoices", body).Code)

	w := doJSON(t, r, http.MethodGet, "/v1/audit/calculations?transaction_type=B2B", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []*auditdomain.CalculationAudit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "B2B", resp.Data[0].TransactionType)
}

func TestHealthz(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
