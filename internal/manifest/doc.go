// Package manifest loads and validates language configurations. A language
// configuration names a language and its file extension, a table of stored
// templates, and a set of recipes made of raw build steps. Files are checked
// against an embedded JSON Schema before they are decoded.
package manifest
