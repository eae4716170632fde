package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"catalog-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PropertyListSource   = "PropertyListSource"
	FavoriteChangedEvent = "FavoriteChangedEvent"
	VersionV1            = "1.0.0"
)

// schemaKinds maps a top-level schema directory to the key suffix.
var schemaKinds = map[string]string{
	"sources": "Source",
	"events":  "Event",
}

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	for dir := range schemaKinds {
		err := fs.WalkDir(schemas.SchemasFS, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			file, err := schemas.SchemasFS.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				return fmt.Errorf("failed to add schema resource %s: %w", path, err)
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and adding schema resources: %v", err)
		}
	}

	// all resources are registered before compiling so $ref between files resolves
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
	}
}

// generateKeyFromPath turns "sources/property-list/v1.json" into
// "PropertyListSource/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}
	suffix, ok := schemaKinds[parts[0]]
	if !ok {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return name.String() + "/" + version
}

// Validate checks body against the schema registered under name/version.
func Validate(name, version string, body []byte) error {
	key := name + "/" + version
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("payload is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidatePropertyList checks an upstream property list payload.
func ValidatePropertyList(body []byte) error {
	return Validate(PropertyListSource, VersionV1, body)
}

// ValidateFavoriteEvent checks an outgoing favorite-changed event.
func ValidateFavoriteEvent(body []byte) error {
	return Validate(FavoriteChangedEvent, VersionV1, body)
}
