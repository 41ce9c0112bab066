package metricsconfig

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/query.schema.json
var querySchemaJSON []byte

const querySchemaURL = "https://github.com/Kargones/hanadb-exporter/query.schema.json"

// querySchema компилирует встроенную JSON Schema описания запроса один раз.
var querySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(querySchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("разбор встроенной схемы: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(querySchemaURL, doc); err != nil {
		return nil, fmt.Errorf("регистрация встроенной схемы: %w", err)
	}
	return compiler.Compile(querySchemaURL)
})

// validateQueryDocument проверяет описание одного запроса по схеме.
func validateQueryDocument(raw []byte) error {
	schema, err := querySchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
