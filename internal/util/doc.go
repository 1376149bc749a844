// Package util holds helpers shared by the tool and flow packages: JSON schema
// derivation from tagged structs, schema based argument validation and
// text/template rendering.
package util
