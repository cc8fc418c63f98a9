package web

import "embed"

//go:embed all:assets
var assetsFS embed.FS

// indexHTML is the single page served at "/".
var indexHTML = func() []byte {
	b, err := assetsFS.ReadFile("assets/index.html")
	if err != nil {
		panic("web: missing embedded index.html: " + err.Error())
	}
	return b
}()
