// Package api holds the published OpenAPI description of the marketplace HTTP interface.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
