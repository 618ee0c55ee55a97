package config

// schemaJSON is the JSON Schema (Draft 2020-12) that every decoded
// .thornrc.yaml document is validated against before it is applied.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "min_version": {
      "type": "string",
      "description": "Minimum thorn build version required to run this project."
    },
    "no_color": {
      "type": "boolean"
    },
    "watch_debounce": {
      "type": "string",
      "description": "Duration string, e.g. \"200ms\"."
    },
    "history_file": {
      "type": "string"
    }
  }
}`
