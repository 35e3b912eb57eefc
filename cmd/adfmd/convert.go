package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/adfmd/internal/adf"
	"github.com/gubarz/adfmd/internal/config"
	"github.com/gubarz/adfmd/internal/converter"
	"github.com/gubarz/adfmd/internal/output"
	"github.com/gubarz/adfmd/internal/render"
	"github.com/gubarz/adfmd/internal/ui"
)

var toMarkdownCmd = &cobra.Command{
	Use:   "to-md [file|-]",
	Short: "Convert ADF JSON to Markdown",
	Long: `Reads an ADF document (or a {"body", "metadata"} envelope) and writes
Markdown. Metadata from --meta or the envelope becomes front-matter.

Examples:
  adfmd to-md page.json
  curl ... | adfmd to-md --meta pageId=123 --meta title="Release notes"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToMarkdown,
}

var toADFCmd = &cobra.Command{
	Use:   "to-adf [file|-]",
	Short: "Convert Markdown to ADF JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runToADF,
}

var htmlCmd = &cobra.Command{
	Use:   "html [file|-]",
	Short: "Render Markdown as HTML after normalising it through ADF",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHTML,
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Browse a document with its rendered Markdown and ADF outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	toMarkdownCmd.Flags().StringArray("meta", nil, "Front-matter entry as key=value (repeatable)")

	toADFCmd.Flags().Bool("envelope", false, "Wrap output as {\"body\": doc, \"metadata\": meta}")
	toADFCmd.Flags().Bool("compact", false, "Write compact JSON")
	toADFCmd.Flags().Bool("local-ids", false, "Assign a localId to every table")
	viper.BindPFlag("table_local_ids", toADFCmd.Flags().Lookup("local-ids")) //nolint:errcheck

	rootCmd.AddCommand(toMarkdownCmd, toADFCmd, htmlCmd, viewCmd)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// parseMeta turns key=value pairs into metadata. Returns nil for no pairs.
func parseMeta(pairs []string) (converter.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := converter.Metadata{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: want key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}

func runToMarkdown(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	pairs, _ := cmd.Flags().GetStringArray("meta")
	meta, err := parseMeta(pairs)
	if err != nil {
		return err
	}

	md, err := newConverter().ToMarkdownJSON(data, meta)
	if err != nil {
		return err
	}
	return deliver(cmd, md)
}

func runToADF(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc, meta, err := newConverter().ToADF(string(data))
	if err != nil {
		return err
	}

	indent := config.GetJSONIndent()
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		indent = ""
	}

	var v any = doc
	if envelope, _ := cmd.Flags().GetBool("envelope"); envelope {
		v = converter.Envelope{Body: doc, Metadata: meta}
	}

	out, err := converter.EncodeJSON(v, indent)
	if err != nil {
		return err
	}
	return deliver(cmd, string(out))
}

func runHTML(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	conv := newConverter()
	doc, _, err := conv.ToADF(string(data))
	if err != nil {
		return err
	}
	md, err := conv.ToMarkdown(doc, nil)
	if err != nil {
		return err
	}

	html, err := render.HTML(md)
	if err != nil {
		return err
	}
	return deliver(cmd, string(html))
}

func runView(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	conv := newConverter()
	doc, meta, err := loadDocument(conv, args[0], data)
	if err != nil {
		return err
	}
	md, err := conv.ToMarkdown(doc, meta)
	if err != nil {
		return err
	}

	title := meta.String("title")
	if title == "" {
		title = filepath.Base(args[0])
	}
	return ui.Run(title, md, doc, output.SystemClipboard())
}

// loadDocument decodes .json files as ADF and anything else as Markdown.
func loadDocument(conv *converter.Converter, name string, data []byte) (*adf.Document, converter.Metadata, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return converter.DecodeDocument(data)
	}
	return conv.ToADF(string(data))
}
