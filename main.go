package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-weekend-raytracer/internal/config"
	"github.com/df07/go-weekend-raytracer/internal/logging"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	v          *viper.Viper
	logger     zerolog.Logger
	configFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "weekend",
		Short: "A stochastic path tracer for sphere scenes",
		Long: `weekend renders scenes of spheres with diffuse, metal and glass materials.
It supports defocus blur and motion blur and writes PPM, PNG or BMP images
to stdout, a file or an S3 bucket.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal
			_ = godotenv.Load(".env")

			if err := config.Load(a.v, a.configFile); err != nil {
				return err
			}
			a.logger = logging.New(logging.ParseLevel(a.v.GetString("logLevel")), cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	bindFlags(a.v, rootCmd.PersistentFlags(), map[string]string{"log-level": "logLevel"})

	rootCmd.AddCommand(
		newRenderCmd(a),
		newScenesCmd(a),
		newServeCmd(a),
		newGradientCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
