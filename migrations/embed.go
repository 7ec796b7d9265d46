// Package migrations embeds the SQL schema so the server can apply it with
// goose at startup without a migrations directory on disk.
package migrations

import "embed"

// FS holds every *.sql migration, applied in version order.
//
//go:embed *.sql
var FS embed.FS
