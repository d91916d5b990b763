package sift

// Set at build time with -ldflags "-X github.com/hashemi/Sift/sift.Version=...".
var (
	Version   = "0.1.0-dev"
	BuildDate = "unknown"
)
