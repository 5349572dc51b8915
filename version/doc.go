// Package version reports the build version of the registry library and of
// binaries that embed it. The version feeds the service.version attribute of
// exported telemetry when settings leave it empty.
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/tinyioc/version.Version=1.0.0"
package version
