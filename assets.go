package blogshell

import "embed"

// EmbeddedAssets contains static assets shipped with the binary:
// blogshell.js, the client side of the drawer's toggle affordances.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
