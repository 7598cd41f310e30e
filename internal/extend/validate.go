package extend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	passportSchemaOnce sync.Once
	passportSchema     *jsonschema.Schema
	passportSchemaErr  error
)

// compiledPassportSchema compiles the passport schema once; the schema is
// static so the compiler never needs to run again.
func compiledPassportSchema() (*jsonschema.Schema, error) {
	passportSchemaOnce.Do(func() {
		b, err := json.Marshal(stripVendorKeywords(BuildPassportJSONSchema()))
		if err != nil {
			passportSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("passport.json", bytes.NewReader(b)); err != nil {
			passportSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		passportSchema, passportSchemaErr = compiler.Compile("passport.json")
	})
	return passportSchema, passportSchemaErr
}

func validateAgainstPassportSchema(value map[string]any) error {
	schema, err := compiledPassportSchema()
	if err != nil {
		return err
	}
	// Round-trip so numbers and nested values have the generic shapes the
	// validator expects.
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal output: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("output does not match schema: %w", err)
	}
	return nil
}

// stripVendorKeywords removes "extend:"-prefixed annotations, which are vendor
// extensions and not valid JSON-Schema keywords.
func stripVendorKeywords(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		if len(k) > 7 && k[:7] == "extend:" {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = stripVendorKeywords(nested)
			continue
		}
		out[k] = v
	}
	return out
}
