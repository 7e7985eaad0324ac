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
// Checks required fields, enums and numeric bounds of every property the schema describes.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
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
	v := &verifier{defs: defs}
	v.check("", schema, configMap)
	if len(v.errs) > 0 {
		sort.Strings(v.errs)
		return fmt.Errorf("validation failed: %s", strings.Join(v.errs, "; "))
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct. Only fields tagged
// with jsonschema "required" are listed as required.
func GenerateSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{}), nil
}

type verifier struct {
	defs map[string]any
	errs []string
}

func (v *verifier) resolve(node map[string]any) map[string]any {
	for range 10 { // refs never nest deeper than this in a reflected schema
		ref, ok := node["$ref"].(string)
		if !ok {
			return node
		}
		def, ok := v.defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any)
		if !ok {
			return node
		}
		node = def
	}
	return node
}

func (v *verifier) check(path string, node map[string]any, value any) {
	node = v.resolve(node)

	if enum, ok := node["enum"].([]any); ok && value != nil {
		if s, isStr := value.(string); !isStr || s != "" {
			if !contains(enum, value) {
				v.errs = append(v.errs, fmt.Sprintf("%s: value %v not in %v", path, value, enum))
			}
		}
	}

	if num, ok := value.(float64); ok {
		if lim, ok := node["minimum"].(float64); ok && num < lim {
			v.errs = append(v.errs, fmt.Sprintf("%s: %v is less than %v", path, num, lim))
		}
		if lim, ok := node["maximum"].(float64); ok && num > lim {
			v.errs = append(v.errs, fmt.Sprintf("%s: %v is greater than %v", path, num, lim))
		}
	}

	switch val := value.(type) {
	case map[string]any:
		props, _ := node["properties"].(map[string]any)
		for name, p := range props {
			pn, ok := p.(map[string]any)
			if !ok {
				continue
			}
			v.check(join(path, name), pn, val[name])
		}
		if req, ok := node["required"].([]any); ok {
			for _, r := range req {
				name, _ := r.(string)
				if s, isStr := val[name].(string); val[name] == nil || (isStr && s == "") {
					v.errs = append(v.errs, fmt.Sprintf("%s is required", join(path, name)))
				}
			}
		}
	case []any:
		items, ok := node["items"].(map[string]any)
		if !ok {
			return
		}
		for i, el := range val {
			v.check(fmt.Sprintf("%s[%d]", path, i), items, el)
		}
	}
}

func contains(list []any, value any) bool {
	for _, el := range list {
		if el == value {
			return true
		}
	}
	return false
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
