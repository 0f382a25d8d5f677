package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

// BuildRecordJSONSchema returns the JSON-Schema of a StructuredRecord as a generic map.
// Stored records are validated against it before they are persisted.
func BuildRecordJSONSchema() map[string]any {
	officeNames := []any{""}
	for _, n := range constants.OfficeNames() {
		officeNames = append(officeNames, string(n))
	}
	officeTypes := []any{""}
	for _, t := range constants.OfficeTypes() {
		officeTypes = append(officeTypes, string(t))
	}

	props := map[string]any{
		"receivedByOffice":            stringProp(),
		"recipientNameAndDesignation": stringProp(),
		"letterType":                  map[string]any{"type": "string", "minLength": 1},
		"letterDate":                  stringProp(),
		"mobileNumber":                map[string]any{"type": "string", "pattern": `^$|^(\+91)?[6-9][0-9]{9}(,(\+91)?[6-9][0-9]{9})*$`},
		"remarks":                     map[string]any{"type": "string", "minLength": 1},
		"actionType":                  map[string]any{"type": "string", "minLength": 1},
		"letterStatus":                map[string]any{"type": "string", "const": string(constants.LetterStatusPending)},
		"letterMedium":                map[string]any{"type": "string", "minLength": 1},
		"letterSubject":               stringProp(),
		"officeType":                  map[string]any{"type": "string", "enum": officeTypes},
		"officeName":                  map[string]any{"type": "string", "enum": officeNames},
	}
	required := make([]string, 0, len(props))
	for _, f := range (StructuredRecord{}).Fields() {
		required = append(required, f.Key)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		b, err := json.Marshal(BuildRecordJSONSchema())
		if err != nil {
			recordSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
			recordSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		recordSchema, recordSchemaErr = compiler.Compile("record.json")
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("compile schema: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// ValidateRecordJSON checks raw record JSON against the record schema.
func ValidateRecordJSON(data []byte) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}

// MarshalValidated encodes the record and validates the result.
func MarshalValidated(r StructuredRecord) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := ValidateRecordJSON(b); err != nil {
		return nil, err
	}
	return b, nil
}
