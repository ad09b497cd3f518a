package server

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything cmd/server needs to start a Server.
type Config struct {
	Addr      string `mapstructure:"addr"`
	ScenePath string `mapstructure:"scene"`
	TickMs    int    `mapstructure:"tick_ms"`
}

// LoadConfig binds --addr, --scene, and --tick-ms (env prefix
// NETTWORKERS_, e.g. NETTWORKERS_ADDR) and parses args into a Config.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("nettworkers-server", pflag.ContinueOnError)
	flags.String("addr", "127.0.0.1:9000", "UDP address to bind")
	flags.String("scene", "scenes/scene_1.yaml", "path to the scene file to load")
	flags.Int("tick-ms", 16, "server tick period in milliseconds")

	if err := flags.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parsing server flags")
	}

	v := viper.New()
	v.SetEnvPrefix("NETTWORKERS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag("addr", flags.Lookup("addr")); err != nil {
		return Config{}, errors.Wrap(err, "binding addr flag")
	}
	if err := v.BindPFlag("scene", flags.Lookup("scene")); err != nil {
		return Config{}, errors.Wrap(err, "binding scene flag")
	}
	if err := v.BindPFlag("tick_ms", flags.Lookup("tick-ms")); err != nil {
		return Config{}, errors.Wrap(err, "binding tick-ms flag")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshaling server config")
	}
	return cfg, nil
}
