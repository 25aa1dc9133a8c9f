package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any sub-commands
var rootCmd = &cobra.Command{
	Use:   "rangebench",
	Short: "Compares sequential and parallel range execution",
	Long: `rangebench applies a per-element payload to a generated sequence
under each requested execution policy, reports the elapsed time, and checks
that every parallel result matches the sequential one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		rep, err := run(cfg)
		if err != nil {
			return err
		}
		if err = rep.write(cmd.OutOrStdout(), cfg.Output); err != nil {
			return err
		}
		if cfg.Metrics {
			return writeMetrics(cmd.OutOrStdout())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("rangebench exiting with error: %+v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLog)

	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"YAML config file, flags and RANGEBENCH_* variables override it")
	flags.StringP("policy", "p", "all",
		"Execution policy: sequential, parallel, parallel-vector or all")
	flags.IntP("workers", "w", 0,
		"Number of slices per parallel dispatch, 0 for the number of CPUs")
	flags.IntP("size", "n", 1<<20, "Number of elements in the sequence")
	flags.IntP("iterations", "i", 10, "Number of dispatches per policy")
	flags.String("payload", payloadCross, "Per-element payload: square (x*x) or cross (norm of a cross product)")
	flags.String("executor", executorSystem, "Executor for parallel slices: system or pool")
	flags.Int("queue", 64, "Queue capacity of the pool executor")
	flags.StringP("output", "o", outputText, "Report format: text or yaml")
	flags.Bool("metrics", false, "Print the collected Prometheus metrics after the report")
	flags.BoolP("verbose", "v", false, "Verbose mode for debugging")

	for _, name := range []string{"policy", "workers", "size", "iterations",
		"payload", "executor", "queue", "output", "metrics", "verbose"} {
		handleBindingError(viper.BindPFlag(name, flags.Lookup(name)), name)
	}
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("rangebench")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Unable to read config file (%s): %+v", cfgFile, err)
	}
	jww.INFO.Printf("Using config file %s", viper.ConfigFileUsed())
}

// initLog sets the logging threshold.
func initLog() {
	if viper.GetBool("verbose") {
		jww.SetStdoutThreshold(jww.LevelDebug)
		jww.SetLogThreshold(jww.LevelDebug)
	} else {
		jww.SetStdoutThreshold(jww.LevelWarn)
	}
}
