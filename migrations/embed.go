// Package migrations holds the SQL schema of the service. The files are applied
// in order by golang-migrate, both at startup and by the integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
