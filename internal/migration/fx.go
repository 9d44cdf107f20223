package migration

import (
	"github.com/fakturio/fakturio/internal/config"
	customerdomain "github.com/fakturio/fakturio/internal/customer/domain"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// The versioned SQL targets postgres; embedded sqlite and mysql
		// setups derive the schema from the models instead.
		return conn.AutoMigrate(
			&supplierdomain.Supplier{},
			&customerdomain.Customer{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceItem{},
		)
	}),
)
