package version

// AppVersion is set via -ldflags "-X cigate/internal/version.AppVersion=...".
var AppVersion = "dev"
