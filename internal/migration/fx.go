package migration

import (
	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"github.com/smallbiznis/tavolo/internal/config"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	"github.com/smallbiznis/tavolo/internal/seed"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	taxauditdomain "github.com/smallbiznis/tavolo/internal/taxaudit/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
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
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql/sqlite dev targets: schema from the models plus the
			// pending-uniqueness indexes the SQL migration carries.
			if err := conn.AutoMigrate(
				&staffdomain.Staff{},
				&floordomain.Table{},
				&floordomain.Seat{},
				&trxdomain.WaitingTransaction{},
				&taxauditdomain.AuditLog{},
			); err != nil {
				return err
			}
			if err := autoMigrateRequests(conn); err != nil {
				return err
			}
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoFloor(conn)
		}
		return nil
	}),
)

func autoMigrateRequests(conn *gorm.DB) error {
	for _, kind := range []billreqdomain.Kind{billreqdomain.KindPrintBill, billreqdomain.KindPayEntireBill} {
		if err := conn.Table(kind.Table()).AutoMigrate(&billreqdomain.BillRequest{}); err != nil {
			return err
		}
		stmt := `CREATE UNIQUE INDEX IF NOT EXISTS uq_` + kind.Table() + `_pending ON ` + kind.Table() +
			` (transaction_id) WHERE status = 'Pending'`
		if err := conn.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
