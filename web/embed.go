package web

import "embed"

// StaticFiles embeds the UI build output served by the SPA handler.
// The "all:" prefix keeps dotfiles in the embedded tree.
//
//go:embed all:build
var StaticFiles embed.FS
