package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g.
// --backend-target on "inkwell search", "inkwell ask", and "inkwell serve").
type Flag struct {
	// Name is the long flag name (e.g. "backend-target").
	Name string

	// Shorthand is the one-letter short flag. Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to
	// (e.g. "backend.target").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag registry keys to Flag definitions.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddIntFlag, AddBoolFlag,
// and BindRegisteredFlags to avoid drift from one command to another.
const (
	FlagBackendTarget = "backend-target"
	FlagWebListen     = "listen"
	FlagProvider      = "provider"
	FlagModel         = "model"
	FlagLimit         = "limit"
	FlagStream        = "stream"
	FlagFeedsPath     = "feeds"
	FlagModelsPath    = "models"
	FlagSQLite        = "sqlite"
)

// Flags is the shared flag registry for inkwell commands.
var Flags = FlagSet{
	FlagBackendTarget: {
		Name:        "backend-target",
		Shorthand:   "t",
		ViperKey:    "backend.target",
		Description: "Search/ask backend URL",
	},
	FlagWebListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "web.listen",
		Description: "Address for the web UI to listen on",
	},
	FlagProvider: {
		Name:        "provider",
		Shorthand:   "p",
		ViperKey:    "ask.provider",
		Description: "LLM provider to ask",
	},
	FlagModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "ask.model",
		Description: "Model name (empty for automatic model routing)",
	},
	FlagLimit: {
		Name:        "limit",
		Shorthand:   "n",
		ViperKey:    "ask.limit",
		Description: "Maximum number of articles to consider",
	},
	FlagStream: {
		Name:        "stream",
		ViperKey:    "ask.stream",
		Description: "Stream the answer incrementally",
	},
	FlagFeedsPath: {
		Name:        "feeds",
		ViperKey:    "registry.feeds_path",
		Description: "Path to the feed registry YAML",
	},
	FlagModelsPath: {
		Name:        "models",
		ViperKey:    "registry.models_path",
		Description: "Path to the model registry YAML",
	},
	FlagSQLite: {
		Name:        "sqlite",
		ViperKey:    "storage.sqlite_path",
		Description: "Path to the local ask history database",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string, target *bool) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using
// definitions from the given FlagSet. Call this in PreRunE after InitViper
// to connect flags to the viper precedence chain
// (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from
// NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultInt returns the default int value for a viper key from
// NewDefaultConfig.
func defaultInt(viperKey string) int {
	v := viper.New()
	setViperDefaults(v)
	return v.GetInt(viperKey)
}

// defaultBool returns the default bool value for a viper key from
// NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
