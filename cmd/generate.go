package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"instafolio/pkg/config"
	"instafolio/pkg/document"
	"instafolio/pkg/llm"
	"instafolio/pkg/session"
)

//nolint:gochecknoglobals // Cobra boilerplate
var generateDocument string

//nolint:gochecknoglobals // Cobra boilerplate
var generateEntryID int64

//nolint:gochecknoglobals // Cobra boilerplate
var generateCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var generateTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var generateWrite bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate <summary|skills|experience|portfolio|cover-letter>",
	Short: "Run a generation flow against a document",
	Long: `Run one generation flow and merge the result into the document.

The flows:
  summary       draft a professional summary from education and experience
  skills        suggest additional skills (appended to the existing list)
  experience    rewrite one experience entry's bullets (needs --entry)
  portfolio     rewrite one portfolio entry's description (needs --entry)
  cover-letter  draft a cover letter for the document's target company and title

The merged document is written back to the file unless --write=false.

Example:
  instafolio generate summary -d mydoc.json
  instafolio generate experience -d mydoc.json --entry 2
  instafolio generate cover-letter -d mydoc.json --company "Acme Corp" --title "Platform Engineer"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateDocument, "document", "d", "", "Document file to work on (required)")
	generateCmd.Flags().Int64Var(&generateEntryID, "entry", 0, "Entry id for the experience and portfolio flows")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "Target company for the cover letter (overrides the document)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "Target job title for the cover letter (overrides the document)")
	generateCmd.Flags().BoolVar(&generateWrite, "write", true, "Write the merged document back to the file")
	_ = generateCmd.MarkFlagRequired("document")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	useCase := session.UseCase(args[0])

	var req session.Request
	req, err = session.RequestFor(useCase, generateEntryID)
	if err != nil {
		return err
	}

	if (useCase == session.UseExperience || useCase == session.UsePortfolio) && generateEntryID == 0 {
		err = errors.Errorf("the %s flow requires --entry with the entry id", useCase)
		return err
	}

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if cfg.GeminiAPIKey == "" {
		err = errors.New("no Gemini API key configured: set gemini_api_key in the config file or GEMINI_API_KEY in the environment")
		return err
	}

	var client *llm.Client
	client, err = llm.NewClient(cfg.GeminiAPIKey, cfg.GetModel())
	if err != nil {
		err = errors.Wrap(err, "failed to build generation client")
		return err
	}

	var doc *document.Document
	doc, err = document.LoadFile(generateDocument)
	if err != nil {
		err = errors.Wrap(err, "failed to load document")
		return err
	}

	if generateCompany != "" {
		doc.CoverLetter.Company = generateCompany
	}
	if generateTitle != "" {
		doc.CoverLetter.Title = generateTitle
	}

	sess := session.New(doc, client)

	// Show a spinner during generation unless in verbose mode
	var genSpinner *spinner
	if !getVerbose() {
		genSpinner = newSpinner(fmt.Sprintf("Running the %s flow with the Gemini API...", useCase))
		genSpinner.start()
	} else {
		fmt.Fprintf(os.Stderr, "Running the %s flow with the Gemini API...\n", useCase)
	}

	err = sess.Generate(ctx, req)

	if genSpinner != nil {
		genSpinner.stopSpinner()
	}

	if err != nil {
		return err
	}

	if !getVerbose() {
		fmt.Fprintln(os.Stderr, "✓ Generation complete")
	}

	fmt.Println(session.ResultFor(doc, useCase, generateEntryID))

	if generateWrite {
		err = document.SaveFile(doc, generateDocument)
		if err != nil {
			err = errors.Wrap(err, "failed to save document")
			return err
		}
		fmt.Fprintf(os.Stderr, "Updated document written to %s\n", generateDocument)
	}

	return err
}

// spinner provides a simple text-based progress indicator on stderr.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprintf(os.Stderr, "%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
