// Package config manages user-level settings stored in config.yaml at the
// root of the mkdev configuration directory. Values can be overridden with
// MKDEV_* environment variables. Settings cover the editor opened after a
// build, the default base file name and recipe, and the log format.
package config
