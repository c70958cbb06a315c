// Package schemas embeds the JSON Schemas for documents and pagination results.
package schemas

import "embed"

// Schema file names
const (
	DocumentSchema = "document.schema.json"
	PagesSchema    = "pages.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
