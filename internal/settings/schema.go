package settings

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const settingsSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "Telephone settings",
  "type": "object",
  "properties": {
    "numbers": {
      "description": "Phone numbers known at startup",
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "observers": {
      "description": "Observers notified on every successful dial, in order",
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "kind": {
            "type": "string",
            "enum": ["operation", "dialing"]
          },
          "sink": {
            "type": "string",
            "enum": ["surface", "log", "blob"]
          }
        },
        "required": ["kind", "sink"],
        "additionalProperties": false
      }
    },
    "listenAddress": {
      "description": "Address the serve command listens on",
      "type": "string"
    },
    "logFile": {
      "type": "object",
      "properties": {
        "path": {"type": "string", "minLength": 1},
        "maxSizeMB": {"type": "integer", "minimum": 0},
        "maxBackups": {"type": "integer", "minimum": 0},
        "maxAgeDays": {"type": "integer", "minimum": 0}
      },
      "required": ["path"],
      "additionalProperties": false
    },
    "blobOutput": {
      "type": "object",
      "properties": {
        "uri": {"type": "string", "minLength": 1},
        "sasToken": {"type": "string"},
        "managedIdentityClientId": {"type": "string"}
      },
      "required": ["uri"],
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// validateObjectJSON validates the specified json with schema.
// If json is empty string, it will be converted into an empty JSON object
// before being validated.
func validateObjectJSON(schema *gojsonschema.Schema, json string) error {
	if json == "" {
		json = "{}"
	}

	doc := gojsonschema.NewStringLoader(json)
	res, err := schema.Validate(doc)
	if err != nil {
		return err
	}
	if !res.Valid() {
		for _, err := range res.Errors() {
			// return with the first error
			return fmt.Errorf("%s", err)
		}
	}
	return nil
}

func validateSettingsJSON(json string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(settingsSchema))
	if err != nil {
		return errors.Wrap(err, "failed to load settings schema")
	}
	if err := validateObjectJSON(schema, json); err != nil {
		return errors.Wrap(err, "invalid settings JSON")
	}
	return nil
}
