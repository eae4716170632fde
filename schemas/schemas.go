package schemas

import "embed"

// SchemasFS holds the JSON schemas of upstream payloads (sources/) and of the
// events this service publishes (events/).
//
//go:embed sources/*/*.json events/*/*.json
var SchemasFS embed.FS
