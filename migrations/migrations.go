package migrations

import "embed"

// FS holds the SQL schema migrations for every supported backend.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
