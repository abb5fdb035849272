package resume

import (
	_ "embed"
	"encoding/json"
	"io"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var documentSchema string

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// LoadJSON reads a resume document from JSON. The payload is checked against the embedded
// schema before decoding so unknown keys and wrongly typed values are reported by path.
// Completeness is not checked here, see Document.Validate.
func LoadJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read resume JSON", Cause: err}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &LoadError{Message: "failed to check resume JSON against schema", Cause: err}
	}
	if !result.Valid() {
		verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, verr
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal resume JSON", Cause: err}
	}
	return &doc, nil
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
