package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"visa-engine/internal/config"
	"visa-engine/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "visa-engine",
	Short: "F-1 visa timeline and checklist engine.",
	Long: `visa-engine computes CPT/OPT eligibility dates and a personalized task checklist
for an international student, merged with policy-update records.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.visa-engine.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "Set log level. Available: debug, info, warn, error, fatal")
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("loglevel")); err != nil {
		return err
	}

	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := logging.SetLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := logging.SetFormat(c.LogFormat); err != nil {
		return err
	}
	cfg = c
	return nil
}
