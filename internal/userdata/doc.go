// Package userdata manages the mkdev configuration root: the langs/
// directory of language configurations, the templates/ tree they refer to,
// and the settings file. It resolves the root, seeds it with the bundled
// defaults on first run, and checks an existing root for missing pieces.
package userdata
