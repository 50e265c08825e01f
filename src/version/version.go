// Package version stamps the build. The value is overridable at link time:
//
//	go build -ldflags "-X github.com/username/kasboek/backend/src/version.Version=1.2.3"
package version

// Version is the backend release version.
var Version = "0.1.0"
