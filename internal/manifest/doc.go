// Package manifest parses and validates the template manifest: the static
// list of files the scaffolder copies into a Strapi project. The manifest is
// YAML and is checked against an embedded JSON Schema before use.
package manifest
