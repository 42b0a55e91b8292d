package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/portfolioai/ai/observability/logging"
	"github.com/hrygo/portfolioai/internal/profile"
	"github.com/hrygo/portfolioai/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "portfolioai",
	Short: `A multi-agent assistant for planning and overseeing a national events portfolio.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Service managers provide the environment themselves.
		if !isRunningAsSystemdService() {
			_ = godotenv.Load()
		}
		logging.Setup(logging.Options{
			Mode:   viper.GetString("mode"),
			Level:  logging.ParseLevel(viper.GetString("log-level")),
			Writer: cmd.ErrOrStderr(),
		})
		return nil
	},
	SilenceUsage: true,
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("port", 28090)
	viper.SetDefault("data", "data")
	viper.SetDefault("workflow", "events")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 28090, "port of server")
	rootCmd.PersistentFlags().String("data", "data", "knowledge directory (events, benchmarks, kpi_library, organizations)")
	rootCmd.PersistentFlags().String("rules", "", "directory of <workflow>.yaml routing tables overriding the built-in ones")
	rootCmd.PersistentFlags().String("workflow", "events", `default workflow, "events" or "celebrations"`)
	rootCmd.PersistentFlags().String("log-level", "info", "debug, info, warn or error")

	for _, name := range []string{"mode", "addr", "port", "data", "rules", "workflow", "log-level"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("portfolioai")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newServeCmd(), newAskCmd(), newSummaryCmd(), newMCPCmd(), newVersionCmd())
}

// loadProfile assembles the profile from flags, PORTFOLIOAI_* variables and
// the .env file, then validates it.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:     viper.GetString("mode"),
		Addr:     viper.GetString("addr"),
		Port:     viper.GetInt("port"),
		Data:     viper.GetString("data"),
		Rules:    viper.GetString("rules"),
		Workflow: viper.GetString("workflow"),
		Version:  version.String(),
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.StringFull())
		},
	}
}

// isRunningAsSystemdService detects if the process is running under systemd
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
