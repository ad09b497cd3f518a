package client

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything cmd/client needs to start a Client.
type Config struct {
	ServerAddr string `mapstructure:"server"`
	Name       string `mapstructure:"name"`
	DelayMs    int    `mapstructure:"delay_ms"`
	Predict    bool   `mapstructure:"predict"`
	Reconcile  bool   `mapstructure:"reconcile"`
}

// LoadConfig binds --server, --name, --delay-ms, --predict, and
// --reconcile (env prefix NETTWORKERS_) and parses args into a Config.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("nettworkers-client", pflag.ContinueOnError)
	flags.String("server", "127.0.0.1:9000", "server UDP address to connect to")
	flags.String("name", "player", "local display name (not sent to the server)")
	flags.Int("delay-ms", 0, "artificial one-way delay to simulate, in milliseconds")
	flags.Bool("predict", true, "apply local commands immediately instead of waiting for the server")
	flags.Bool("reconcile", true, "replay unconfirmed commands after each server snapshot")

	if err := flags.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parsing client flags")
	}

	v := viper.New()
	v.SetEnvPrefix("NETTWORKERS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"server", "name", "delay-ms", "predict", "reconcile"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			return Config{}, errors.Wrapf(err, "binding %s flag", name)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshaling client config")
	}
	return cfg, nil
}
