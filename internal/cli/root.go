package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ec2ctl-io/ec2ctl/internal/config"
	"github.com/ec2ctl-io/ec2ctl/internal/logging"
)

var (
	cfgFile string

	// logger lives for a single invocation; it is built in initConfig and
	// handed to every component that emits diagnostics.
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ec2ctl",
	Short: "Operator control for EC2 instances",
	Long: `ec2ctl locates EC2 instances by Name tag or instance id, prints their
descriptions and force-restarts instances that no longer respond to a
plain stop.

Lookups resolve to exactly one instance: no match, more than one match
and a malformed provider response each fail with a distinct error.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.Dir()+"/config.yaml)")
	rootCmd.PersistentFlags().String("region", "", "AWS region")
	rootCmd.PersistentFlags().String("profile", "", "AWS shared config profile")
	rootCmd.PersistentFlags().String("backend", "", "transport, cli or sdk")
	rootCmd.PersistentFlags().String("aws-cli", "", "path of the aws binary for the cli backend")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("auto-approve", false, "skip interactive approval of destructive commands")

	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("cli_path", rootCmd.PersistentFlags().Lookup("aws-cli"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("auto_approve", rootCmd.PersistentFlags().Lookup("auto-approve"))

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("EC2CTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine, the defaults cover everything.
	_ = viper.ReadInConfig()

	logger = logging.New(viper.GetString("log_level"), os.Stderr)
}
