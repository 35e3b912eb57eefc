package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/adfmd/internal/batch"
	"github.com/gubarz/adfmd/internal/config"
	"github.com/gubarz/adfmd/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch <src> <dst>",
	Short: "Convert every file in a directory tree",
	Long: `Converts all .md files (--to adf) or .json files (--to md) under src into
the same layout under dst. Markdown front-matter is kept by writing a
{"body", "metadata"} envelope.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

var watchCmd = &cobra.Command{
	Use:   "watch <src> <dst>",
	Short: "Convert files under src whenever they change",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatch,
}

func init() {
	for _, c := range []*cobra.Command{batchCmd, watchCmd} {
		c.Flags().String("to", "adf", "Target format: adf or md")
	}
	batchCmd.Flags().IntP("workers", "w", 0, "Concurrent conversions (default: number of CPUs)")
	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers")) //nolint:errcheck

	rootCmd.AddCommand(batchCmd, watchCmd)
}

func newBatchConverter() *batch.Converter {
	return &batch.Converter{
		Fs:      afero.NewOsFs(),
		Conv:    newConverter(),
		Workers: config.GetWorkers(),
		Indent:  config.GetJSONIndent(),
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	dir, err := batch.ParseDirection(to)
	if err != nil {
		return err
	}

	results, err := newBatchConverter().Run(cmd.Context(), args[0], args[1], dir)
	if err != nil {
		return err
	}

	failed := batch.Failed(results)
	for _, r := range failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", r.Source, r.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d of %d files\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		return fmt.Errorf("%d files failed", len(failed))
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	dir, err := batch.ParseDirection(to)
	if err != nil {
		return err
	}

	w, err := newBatchConverter().NewWatcher(args[0], args[1], dir)
	if err != nil {
		return err
	}

	results := make(chan batch.Result)
	errc := make(chan error, 1)
	go func() { errc <- w.Run(cmd.Context(), results) }()

	for r := range results {
		if r.Err != nil {
			logger.Warn("%s: %v", r.Source, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", r.Source, r.Target)
	}
	return <-errc
}
