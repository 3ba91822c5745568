// Package config builds the server's runtime Config from flags, environment
// variables, and an optional config file, using a cobra root command and
// viper for layered, named settings instead of inline flag.String/flag.Bool
// calls.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment-variable overrides, e.g.
// INDEXER_POOL_SIZE sets pool_size when --pool-size is not given explicitly.
const EnvPrefix = "INDEXER"

// Config holds the fully resolved runtime configuration for one server process.
type Config struct {
	ListenAddr string // TCP address the wire protocol listens on
	AdminAddr  string // optional HTTP admin surface address; empty disables it
	PoolSize   int    // fixed worker-pool size bounding concurrent connections
	Quiet      bool   // discard all logging
	Production bool   // use JSON logging instead of the dev console encoder
}

const (
	DefaultListenAddr = ":8080"
	DefaultPoolSize   = 100
)

// BindFlags registers the configuration flags on cmd and wires viper to read the
// same names from the environment (INDEXER_*) and an optional config file.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("listen-addr", DefaultListenAddr, "TCP address for the package-indexer wire protocol")
	flags.String("admin-addr", "", "Admin HTTP address for health/metrics/pprof (disabled if empty)")
	flags.Int("pool-size", DefaultPoolSize, "Fixed size of the connection worker pool")
	flags.Bool("quiet", false, "Disable logging entirely")
	flags.Bool("production", false, "Use JSON logging instead of the development console encoder")
	flags.String("config", "", "Optional path to a YAML/TOML/JSON config file")

	_ = viper.BindPFlag("listen_addr", flags.Lookup("listen-addr"))
	_ = viper.BindPFlag("admin_addr", flags.Lookup("admin-addr"))
	_ = viper.BindPFlag("pool_size", flags.Lookup("pool-size"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("production", flags.Lookup("production"))

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Load reads the config file named by --config (if any), then resolves the final
// Config from viper's merged flag/env/file/default view. Precedence is the
// standard viper order: explicit flag > environment variable > config file > default.
func Load(cmd *cobra.Command) (*Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return &Config{
		ListenAddr: viper.GetString("listen_addr"),
		AdminAddr:  viper.GetString("admin_addr"),
		PoolSize:   viper.GetInt("pool_size"),
		Quiet:      viper.GetBool("quiet"),
		Production: viper.GetBool("production"),
	}, nil
}
