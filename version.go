package cryptokit

// Version is populated at build time via ldflags. In development it
// defaults to v0.0.0-in-progress.
var Version = "v0.0.0-in-progress"

// VersionString returns the library version.
func VersionString() string {
	return Version
}
