// Package web holds the embedded portfolio page and its static translation file.
package web

import "embed"

// LanguagesPath is the relative path of the translation file inside Assets,
// matching the path the page fetches it from.
const LanguagesPath = "data/languages.json"

// PagePath is the page template localized by the server.
const PagePath = "index.html"

// Assets contains the page and the translation file.
//
//go:embed index.html data/languages.json
var Assets embed.FS
