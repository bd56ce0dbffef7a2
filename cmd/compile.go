package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"instafolio/pkg/compile"
	"instafolio/pkg/config"
	"instafolio/pkg/document"
)

//nolint:gochecknoglobals // Cobra boilerplate
var compileDocument string

//nolint:gochecknoglobals // Cobra boilerplate
var compileOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var compileTheme string

//nolint:gochecknoglobals // Cobra boilerplate
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a document into its resume, preview, and portfolio outputs",
	Long: `Compile a document file into three outputs:

  resume.txt      plain-text resume
  preview.html    themed HTML preview of the resume
  portfolio.html  standalone portfolio page

The same document always compiles to the same outputs. No API key is needed.

Example:
  instafolio compile -d mydoc.json
  instafolio compile -d mydoc.json -o ./dist --theme dark`,
	RunE: runCompile,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileDocument, "document", "d", "", "Document file to compile (required)")
	compileCmd.Flags().StringVarP(&compileOutputDir, "output-dir", "o", "", "Output directory (default from config)")
	compileCmd.Flags().StringVar(&compileTheme, "theme", "", "Preview theme: light or dark (default from config)")
	_ = compileCmd.MarkFlagRequired("document")
}

func runCompile(cmd *cobra.Command, args []string) (err error) {
	var doc *document.Document
	doc, err = document.LoadFile(compileDocument)
	if err != nil {
		err = errors.Wrap(err, "failed to load document")
		return err
	}

	// Compiling is fully local, so a missing config file is fine. Defaults
	// cover whatever neither flags nor config provide.
	cfg, cfgErr := config.Load(getConfigFile())
	if cfgErr != nil {
		cfg = config.Config{}
	}

	outDir := getOutputDir(compileOutputDir, cfg.Defaults.OutputDir)
	if outDir == "" {
		outDir = "./out"
	}

	themeName := compileTheme
	if themeName == "" {
		themeName = cfg.Defaults.Theme
	}
	theme := compile.ParseTheme(themeName)

	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outDir)
		return err
	}

	outputs := []struct {
		name    string
		content string
	}{
		{name: "resume.txt", content: compile.Text(doc)},
		{name: "preview.html", content: compile.Preview(doc, theme)},
		{name: "portfolio.html", content: compile.Site(doc)},
	}

	for _, output := range outputs {
		path := filepath.Join(outDir, output.name)
		err = os.WriteFile(path, []byte(output.content), 0644)
		if err != nil {
			err = errors.Wrapf(err, "failed to write %s", path)
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	return err
}

// getOutputDir picks the flag value over the config value.
func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}
