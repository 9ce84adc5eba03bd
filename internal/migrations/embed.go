// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// Schema creates every table reelist uses. It is idempotent.
//
//go:embed sql/001_initial.sql
var Schema string
