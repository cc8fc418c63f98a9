package config

const (
	defaultBackendTarget = "http://localhost:8080"
	defaultWebListen     = ":7860"

	defaultAskProvider = "openrouter"
	defaultAskLimit    = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Backend: BackendConfig{
			Target: defaultBackendTarget,
		},
		Web: WebConfig{
			Listen: defaultWebListen,
		},
		Ask: AskConfig{
			Provider: defaultAskProvider,
			// Empty model means automatic routing in the backend.
			Model:  "",
			Limit:  defaultAskLimit,
			Stream: true,
		},
	}
}
