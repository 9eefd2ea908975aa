package db

import (
	auditdomain "github.com/ledgerline/taxara/internal/audit/domain"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Open connects and migrates the schema owned by this service.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := conn.AutoMigrate(
		&invoicedomain.Invoice{},
		&auditdomain.CalculationAudit{},
	); err != nil {
		return nil, err
	}
	return conn, nil
}

// Module wires the database connection.
var Module = fx.Module("db",
	fx.Provide(Dialect),
	fx.Provide(Open),
)
