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

// VerifyAgainstEmbeddedSchema checks the config against the embedded JSON schema.
// It reports keys unknown to the schema, which means the schema is stale, and missing required fields.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if err := checkProperties("", configMap, resolve(schema, defs), defs); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// checkProperties walks the config object and fails on the first key the schema doesn't describe
func checkProperties(path string, obj map[string]any, schema map[string]any, defs map[string]any) error {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil // free-form object, like a map
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := props[k].(map[string]any)
		if !ok {
			return fmt.Errorf("unknown field %s", strings.TrimPrefix(path+"."+k, "."))
		}
		if nested, ok := obj[k].(map[string]any); ok {
			if err := checkProperties(path+"."+k, nested, resolve(prop, defs), defs); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve follows a local "#/$defs/Name" reference
func resolve(schema map[string]any, defs map[string]any) map[string]any {
	ref, ok := schema["$ref"].(string)
	if !ok {
		return schema
	}
	if def, ok := defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any); ok {
		return def
	}
	return schema
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Delivery.Interval == 0 {
		return fmt.Errorf("delivery.interval is required")
	}
	if cfg.Channels.Push.Enabled && cfg.Channels.Push.Topic == "" {
		return fmt.Errorf("channels.push.topic is required when push is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
