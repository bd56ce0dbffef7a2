package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"instafolio/pkg/config"
	"instafolio/pkg/llm"
	"instafolio/pkg/server"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session service",
	Long: `Run the HTTP service that hosts editing sessions.

Each session holds one document in memory. The API creates sessions, edits
document sections, runs generation flows, and serves the compiled resume,
preview, and portfolio page.

Without a Gemini API key the service still edits and compiles documents,
but refuses generation requests.

Example:
  instafolio serve
  instafolio serve --addr :9000`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	var gen llm.Generator
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("no Gemini API key configured, generation requests will be refused")
		gen = llm.Unconfigured{}
	} else {
		gen, err = llm.NewClient(cfg.GeminiAPIKey, cfg.GetModel())
		if err != nil {
			err = errors.Wrap(err, "failed to build generation client")
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.New(cfg, gen).Run(ctx)
	return err
}
