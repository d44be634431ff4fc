// Package api embeds the OpenAPI description of the newsletter HTTP API.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document served at /docs.
//
//go:embed openapi.yaml
var OpenAPI []byte
