package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd)
	return cmd
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, DefaultPoolSize, cfg.PoolSize)
	require.Empty(t, cfg.AdminAddr)
	require.False(t, cfg.Quiet)
}

func TestLoad_FlagOverridesDefault(t *testing.T) {
	viper.Reset()
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--pool-size=25", "--listen-addr=:9090"}))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, 25, cfg.PoolSize)
	require.Equal(t, ":9090", cfg.ListenAddr)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	viper.Reset()
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	t.Setenv("INDEXER_POOL_SIZE", "7")

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.PoolSize)
}

func TestLoad_ProductionFlagOverridesDefault(t *testing.T) {
	viper.Reset()
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--production"}))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.True(t, cfg.Production)
}
