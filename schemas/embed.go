// Package schemas embeds the ASHRAE 229 schema documents the converter is
// built against. They are the default schema source; a directory or a remote
// base URL can replace them at runtime.
package schemas

import "embed"

// Document file names, in load order.
const (
	Base         = "ASHRAE229.schema.json"
	Enumerations = "Enumerations2019ASHRAE901.schema.json"
	Output       = "Output2019ASHRAE901.schema.json"
)

// Names lists the documents in the order they are indexed.
var Names = []string{Base, Enumerations, Output}

//go:embed *.schema.json
var FS embed.FS
