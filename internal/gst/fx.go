package gst

import (
	"github.com/ledgerline/taxara/internal/clock"
	"github.com/ledgerline/taxara/internal/config"
	"github.com/ledgerline/taxara/internal/gst/domain"
	"github.com/ledgerline/taxara/internal/gst/service"
	"go.uber.org/fx"
)

// NewSellerConfig maps the deployment configuration onto the engine's seller
// registration. Validation happens in the calculator constructor so a bad
// GSTIN fails app startup.
func NewSellerConfig(cfg config.Config) domain.SellerConfig {
	return domain.SellerConfig{
		StateCode:    cfg.Seller.StateCode,
		GSTIN:        cfg.Seller.GSTIN,
		RoundingMode: domain.RoundingMode(cfg.Seller.RoundingMode),
	}
}

func NewRateProvider() domain.RateProvider {
	return domain.DefaultRateTable()
}

func NewCalculator(cfg domain.SellerConfig, rates domain.RateProvider, clk clock.Clock) (*service.Calculator, error) {
	return service.NewCalculator(cfg, rates, clk)
}

var Module = fx.Module("gst.engine",
	fx.Provide(NewSellerConfig),
	fx.Provide(NewRateProvider),
	fx.Provide(NewCalculator),
)
