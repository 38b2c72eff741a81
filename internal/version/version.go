package version

// Version is the tool version, overridable at build time with
// -ldflags "-X github.com/mikey/mailsift/internal/version.Version=...".
var Version = "0.1.0"
