// Package platform provides cross-platform filesystem operations: exclusive
// file creation that never overwrites, classification of filesystem errors,
// and permission management. On Windows permission changes are a no-op.
package platform
