// Package api holds the OpenAPI contract of the discovery service.
package api

import _ "embed"

// DiscoveryOpenAPI is the discovery service contract, used to validate incoming requests.
//
//go:embed discovery.openapi.yaml
var DiscoveryOpenAPI []byte
