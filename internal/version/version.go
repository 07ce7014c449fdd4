package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/redjax/hwsum/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	RepoUser = "redjax"
	RepoName = "hwsum"
	RepoUrl  = "https://github.com/redjax/hwsum"
	Package  = "hwsum"
)

type PackageInfo struct {
	PackageName        string
	RepoUrl            string
	RepoUser           string
	RepoName           string
	PackageVersion     string
	PackageCommit      string
	PackageReleaseDate string
	Platform           string
}

// GetPackageInfo returns a struct with information about the current package
func GetPackageInfo() PackageInfo {
	return PackageInfo{
		PackageName:        Package,
		RepoUrl:            RepoUrl,
		RepoUser:           RepoUser,
		RepoName:           RepoName,
		PackageVersion:     Version,
		PackageCommit:      Commit,
		PackageReleaseDate: Date,
		Platform:           runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("%s version:%s commit:%s date:%s (%s/%s)",
		Package, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
