package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		// Generate example value based on field type
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// exampleDelays mirrors the default flow timings in milliseconds
var exampleDelays = map[string]int{
	"callback_delay_ms":       2000,
	"commit_message_delay_ms": 500,
	"notification_ms":         3000,
	"pull_delay_ms":           1000,
	"push_delay_ms":           1000,
	"redirect_delay_ms":       1500,
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	// Handle pointer types
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			if delay, ok := exampleDelays[fieldName]; ok {
				return delay
			}
			switch fieldName {
			case "max_log_files":
				return 1000
			case "ssh_port":
				return DefaultSSHPort
			}
			return 10
		}
	}

	// Handle direct types
	switch t.Kind() {
	case reflect.Map:
		if t.Name() == "KeyBindingsConfig" {
			return map[string]any{
				"integrations": "I",
				"pull":         []string{"p", "P"},
			}
		}
	case reflect.String:
		// Generate contextual examples based on field name
		switch fieldName {
		case "browser":
			return "firefox"
		case "catalog_path":
			return "~/.gitlink/catalog.db"
		case "connected_repository":
			return "acme-corp/acme-corp-demo"
		case "fixtures_path":
			return "~/.gitlink/fixtures.toml"
		case "github_client_id":
			return "Iv1.0123456789abcdef"
		case "identity":
			return IdentityFake
		case "ssh_host":
			return DefaultSSHHost
		case "workspace_path":
			return "~/src/my-project"
		default:
			return "example"
		}
	case reflect.Slice:
		if t.Name() == "StringArray" || (t.Elem().Kind() == reflect.String) {
			if fieldName == "github_scopes" {
				return []string{"repo", "read:user"}
			}
			return []string{"example1", "example2"}
		}
	}

	return nil
}
