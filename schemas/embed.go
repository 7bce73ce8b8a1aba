// Package schemas ships the JSON Schemas for the site's data files.
package schemas

import _ "embed"

// Languages is the schema of data/languages.json.
//
//go:embed languages.schema.json
var Languages string
