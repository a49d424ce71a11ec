package main

import "log/slog"

// Log attribute keys shared by the build, serve and watch code paths.
const (
	keyLang      = "lang"
	keyPath      = "path"
	keyPosts     = "posts"
	keyError     = "error"
	keyDuration  = "duration_ms"
	keyArtifacts = "artifacts"
)

func langAttr(l Language) slog.Attr { return slog.String(keyLang, l.String()) }
