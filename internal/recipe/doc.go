// Package recipe implements the build-step mini-language used by language
// configurations: parsing raw step strings ("dir src", "tmp src|main") into
// typed Steps and resolving them against a BuildContext into concrete
// filesystem targets. Nothing in this package touches the filesystem.
package recipe
