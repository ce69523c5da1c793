package config

// Version is the good-neighbor binary version.
// Set at build time via: -ldflags "-X github.com/goodneighborlab/goodneighbor/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
