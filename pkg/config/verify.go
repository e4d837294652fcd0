package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks required keys and numeric minimums, full draft validation is not attempted.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verifyAgainstSchema(cfg, []byte(embeddedSchema))
}

func verifyAgainstSchema(cfg *Config, schemaData []byte) error {
	var schema map[string]any
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if err := verifyObject("", resolveRef(schema, defs), configMap, defs); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func verifyObject(path string, schema, doc, defs map[string]any) error {
	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			name, _ := r.(string)
			if _, found := doc[name]; !found {
				return fmt.Errorf("%s is required", joinPath(path, name))
			}
		}
	}

	props, _ := schema["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		propSchema, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		propSchema = resolveRef(propSchema, defs)
		switch val := doc[name].(type) {
		case map[string]any:
			if err := verifyObject(joinPath(path, name), propSchema, val, defs); err != nil {
				return err
			}
		case float64:
			if minimum, ok := propSchema["minimum"].(float64); ok && val < minimum {
				return fmt.Errorf("%s must be at least %v", joinPath(path, name), minimum)
			}
		}
	}
	return nil
}

// resolveRef follows a local "#/$defs/Name" reference
func resolveRef(schema, defs map[string]any) map[string]any {
	ref, ok := schema["$ref"].(string)
	if !ok {
		return schema
	}
	if def, ok := defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any); ok {
		return def
	}
	return schema
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
