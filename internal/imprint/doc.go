// Package imprint captures an existing directory tree as recipe steps plus
// the file bodies those steps need as templates.
package imprint
