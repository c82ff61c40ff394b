// Package sqlgate provides the version information for sqlgate.
package sqlgate

// Version is the current version of sqlgate.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
