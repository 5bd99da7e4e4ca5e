// Package migrations embeds the SQL schema applied at startup when a
// postgres store is configured.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
