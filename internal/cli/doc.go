// Package cli implements the mkdev command tree. The root command builds a
// project: its first argument names a language config and the optional
// second and third arguments give the build directory and base file name.
// Subcommands list, validate, search and manage the configuration root.
package cli
