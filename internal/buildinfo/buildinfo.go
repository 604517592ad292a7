// Package buildinfo carries the build identifier stamped in by the linker:
//
//	-ldflags "-X tdisplay/internal/buildinfo.Version=v0.3.0 -X tdisplay/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the window title, the boot log
// and the scene footer.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns every stamped field, for the boot log.
func Long() string {
	return "version=" + Version + " commit=" + Commit + " date=" + Date
}
