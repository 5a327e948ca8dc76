// Package schemas holds the JSON Schemas for persisted data.
package schemas

import _ "embed"

// Documents is the schema for a persisted documents snapshot.
//
//go:embed documents.schema.json
var Documents string
