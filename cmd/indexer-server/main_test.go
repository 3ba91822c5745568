package main

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewRootCommand_FlagsBound(t *testing.T) {
	viper.Reset()
	cmd := newRootCommand()

	for _, name := range []string{"listen-addr", "admin-addr", "pool-size", "quiet", "production", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to be registered", name)
		}
	}
}
