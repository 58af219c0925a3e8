package config

import (
	"strings"

	"github.com/spf13/pflag"
)

var (
	flagConfig   string
	flagDebug    bool
	flagLogFile  string
	flagOBJScale float32
	flagOBJAxes  string
	flagHTML     bool
)

// BindFlags registers the configuration flags on fs. Call it once on the
// root command's persistent flags.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagLogFile, "log-file", "", "Also write logs to this file")
	fs.Float32Var(&flagOBJScale, "obj-scale", 0, "Uniform scale applied to OBJ vertices")
	fs.StringVar(&flagOBJAxes, "obj-axes", "", "Source axes for OBJ x,y,z, e.g. x,z,y")
	fs.BoolVar(&flagHTML, "html", false, "Render reports as HTML")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagOBJScale > 0 {
		cfg.OBJ.Scale = flagOBJScale
	}
	if flagOBJAxes != "" {
		cfg.OBJ.Axes = strings.Split(flagOBJAxes, ",")
	}
	if flagHTML {
		cfg.Report.HTML = true
	}
}
