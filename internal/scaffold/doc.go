// Package scaffold executes recipes. It walks a recipe's raw steps in
// order, parsing and resolving each one and performing the matching
// directory or file creation under the build directory. Files are never
// overwritten: every creation is exclusive, and per-step failures are
// reported without stopping the build, except for a multi-segment
// directory step whose target already exists, which ends the build as
// incomplete.
package scaffold
