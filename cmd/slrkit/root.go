package main

import (
	"fmt"
	"os"

	"github.com/nihei9/slrkit/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tracer traces with key 'slrkit.cli'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.cli")
}

var rootCmd = &cobra.Command{
	Use:   "slrkit",
	Short: "Generate an SLR(1) parsing table from a grammar and parse with it",
	Long: `slrkit provides two features:
- Computes FIRST and FOLLOW sets, the LR(0) automaton, and the SLR(1)
  parsing table of a grammar, and writes them as readable artifacts.
- Parses a whitespace-separated token sequence with the table and reports
  the actions the parser performed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ./"+config.DefaultFileName+" if it exists)")
	rootCmd.PersistentFlags().String("trace", "", "trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().String("dedup", "", "how states are deduplicated [ordered|set]")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory (default .)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
	_ = viper.BindPFlag("dedup", rootCmd.PersistentFlags().Lookup("dedup"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	viper.SetEnvPrefix("SLRKIT")
	viper.AutomaticEnv()
}

func Execute() error {
	initDisplay()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadConfig reads the config file and overlays the values given by flags or
// SLRKIT_* environment variables. It also applies the trace level.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("trace"); v != "" {
		c.Trace = v
	}
	if v := viper.GetString("dedup"); v != "" {
		c.Dedup = v
	}
	if v := viper.GetString("output"); v != "" {
		c.Output = v
	}
	err = c.Validate()
	if err != nil {
		return nil, err
	}

	setTraceLevel(c.Trace)
	tracer().Debugf("config: output=%v, trace=%v, dedup=%v", c.Output, c.Trace, c.Dedup)

	return c, nil
}

var traceKeys = []string{
	"slrkit.cli",
	"slrkit.grammar",
	"slrkit.driver",
	"slrkit.report",
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}
