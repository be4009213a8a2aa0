package cli

// Version is the running build's semantic version; release builds override
// it with -ldflags "-X github.com/Fepozopo/picfx/pkg/cli.Version=...".
var Version = "0.1.0"
