// Package migrations embeds SQL migration files into the binary, so the
// schema travels with the executable on the incubator gateway.
package migrations

import (
	"embed"

	"github.com/incubadora-iot/core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
