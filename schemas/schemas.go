// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// SBOM is the minimal shape an uploaded SBOM must have before it is laid out.
//
//go:embed sbom.schema.json
var SBOM []byte
