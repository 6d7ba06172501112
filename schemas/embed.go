// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// ConfigSchema is the JSON Schema for the server configuration file.
//
//go:embed config.schema.json
var ConfigSchema string
