// Package migrations содержит SQL-схему для каждого поддерживаемого диалекта.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite3/*.sql
var FS embed.FS
