package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds each flag to its config key so flags override config files and environment
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
