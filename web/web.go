// Package web serves the browser UI: a search page and an Ask AI page
// backed by the inkwell search backend. Streamed answers are relayed to the
// browser as Server-Sent Events.
package web

// Config is the web server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":7860")
	ListenAddr string
}
