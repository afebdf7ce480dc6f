package bootstrap

import (
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/notification"
	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/role"
	"github.com/nkp491/surehelp/internal/team"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Stores struct {
	fx.Out

	Profiles      *profile.Store
	Roles         *role.Store
	Teams         *team.Store
	Daily         *metrics.DailyStore
	Notifications *notification.Store
}

func ProvideStores(db *gorm.DB) Stores {
	return Stores{
		Profiles:      profile.NewStore(db),
		Roles:         role.NewStore(db),
		Teams:         team.NewStore(db),
		Daily:         metrics.NewDailyStore(db),
		Notifications: notification.NewStore(db),
	}
}

type migrator interface {
	Migrate() error
}

type MigrationParams struct {
	fx.In

	Profiles      *profile.Store
	Roles         *role.Store
	Teams         *team.Store
	Daily         *metrics.DailyStore
	Notifications *notification.Store
}

func RunMigrations(p MigrationParams) error {
	return Migrate(p.Profiles, p.Roles, p.Teams, p.Daily, p.Notifications)
}

// Migrate runs the stores' migrations in order and stops at the first error.
func Migrate(stores ...migrator) error {
	for _, s := range stores {
		if err := s.Migrate(); err != nil {
			return err
		}
	}
	return nil
}

// MigrateAll opens every store on db and migrates it. Used by the CLI.
func MigrateAll(db *gorm.DB) error {
	s := ProvideStores(db)
	return Migrate(s.Profiles, s.Roles, s.Teams, s.Daily, s.Notifications)
}

var StoresModule = fx.Options(
	fx.Provide(ProvideStores),
	fx.Invoke(RunMigrations),
)
