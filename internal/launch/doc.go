// Package launch opens a finished build in the user's editor. Dispatch picks
// a Launcher from the configured editor command; an empty command yields a
// launcher that always fails.
package launch
