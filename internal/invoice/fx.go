package invoice

import (
	"github.com/ledgerline/taxara/internal/gst"
	"github.com/ledgerline/taxara/internal/invoice/render"
	"github.com/ledgerline/taxara/internal/invoice/repository"
	"github.com/ledgerline/taxara/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	gst.Module,
	fx.Provide(render.NewPDFRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
