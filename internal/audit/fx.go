package audit

import (
	"github.com/ledgerline/taxara/internal/audit/repository"
	"github.com/ledgerline/taxara/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
