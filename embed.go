package blog

import "embed"

// EmbeddedAssets contains the stylesheet shipped with the site.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
