package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/adfmd/internal/config"
	"github.com/gubarz/adfmd/internal/converter"
	"github.com/gubarz/adfmd/internal/logger"
	"github.com/gubarz/adfmd/internal/output"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "adfmd",
	Short: "Convert between Atlassian Document Format and Markdown",
	Long: `Convert page bodies between ADF JSON and a readable Markdown dialect.

Front-matter at the top of a Markdown file carries page metadata such as
the page id and title. Panels are written as blockquote callouts:

  > ⚠️ **Warning:** check before deploying`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy, file")
	rootCmd.PersistentFlags().String("out", "", "Destination path for file output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))   //nolint:errcheck
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")) //nolint:errcheck
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	logger.SetVerbose(config.IsVerbose())
	if file := config.ConfigFile(); file != "" {
		logger.Debug("using config %s", file)
	}
}

// newConverter builds a converter from the loaded configuration.
func newConverter() *converter.Converter {
	return converter.New(converter.Options{
		TableLocalIDs: config.GetTableLocalIDs(),
		NewID:         uuid.NewString,
	})
}

// deliver writes the result according to the output mode.
func deliver(cmd *cobra.Command, text string) error {
	path, _ := cmd.Flags().GetString("out")
	mode := output.ParseMode(config.GetOutput())
	if path != "" && mode == output.Print {
		mode = output.File
	}
	return output.NewWriter(cmd.OutOrStdout()).Write(text, mode, path)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
