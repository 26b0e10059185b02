package model

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema names, matching schemas/<name>.schema.json.
const (
	SchemaGenerate  = "generate"
	SchemaOpen      = "open"
	SchemaSelect    = "select"
	SchemaStyle     = "style"
	SchemaContent   = "content"
	SchemaAttribute = "attribute"
	SchemaTemplate  = "template"
	SchemaTheme     = "theme"
	SchemaSave      = "save"
)

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

func schema(name string) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemaCache[name]; ok {
		return s, nil
	}
	b, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	schemaCache[name] = s
	return s, nil
}

// ValidationError lists every schema violation of a body.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// Decode validates body against the named schema and then unmarshals it
// into dst.
func Decode(name string, body []byte, dst interface{}) error {
	if !json.Valid(body) {
		return &ValidationError{Problems: []string{"body is not valid JSON"}}
	}
	if err := validate(name, gojsonschema.NewBytesLoader(body)); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func validate(name string, doc gojsonschema.JSONLoader) error {
	s, err := schema(name)
	if err != nil {
		return err
	}
	res, err := s.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}
