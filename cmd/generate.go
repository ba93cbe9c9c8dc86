package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/config"
	"github.com/brogergvhs/nataliefeed/internal/news"
	"github.com/brogergvhs/nataliefeed/internal/providers/natalie"
	"github.com/brogergvhs/nataliefeed/internal/render"
	"github.com/brogergvhs/nataliefeed/internal/ui"
	"github.com/brogergvhs/nataliefeed/internal/util"

	"github.com/spf13/cobra"
)

var errNoEntries = errors.New("no news items found")

// reportedError marks a failure that run already wrote to the log.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

var (
	// source
	flagURL        string
	flagUserAgent  string
	flagCloudflare bool

	// output
	flagMode         string
	flagOutput       string
	flagStaticDir    string
	flagTemplatesDir string
	flagPageTemplate string
	flagDryRun       bool
)

func bindGenerateFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagURL, "url", "", "listing page URL")
	c.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	c.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "route requests through the Cloudflare bypass transport")

	c.Flags().StringVar(&flagMode, "mode", "", "output mode: json or html")
	c.Flags().StringVar(&flagOutput, "output", "", "output directory")
	c.Flags().StringVar(&flagStaticDir, "static-dir", "", "directory holding style.css and script.js")
	c.Flags().StringVar(&flagTemplatesDir, "templates-dir", "", "directory holding the index.html page shell (json mode)")
	c.Flags().StringVar(&flagPageTemplate, "page-template", "", "page template replacing the built-in one (html mode)")
	c.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the entries that would be written, write nothing")
}

func init() {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Scrape the listing page and write the JSON feed or HTML page. Uses the selected config, overwritten by CLI flags",
		RunE:  runGenerate,
	}
	bindGenerateFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		URL:              flagURL,
		UserAgent:        flagUserAgent,
		Mode:             flagMode,
		Output:           flagOutput,
		StaticDir:        flagStaticDir,
		TemplatesDir:     flagTemplatesDir,
		PageTemplate:     flagPageTemplate,
		CloudflareBypass: flagCloudflare,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config file: %s\n", strings.TrimSpace(usedPath))

	return run(cmd.Context(), runParams{
		cfg:    cfg,
		dryRun: flagDryRun,
		now:    time.Now,
		log:    logSvc,
		out:    os.Stdout,
	})
}

type runParams struct {
	cfg    *config.Config
	dryRun bool
	now    func() time.Time
	log    *ui.Logger
	out    io.Writer
}

// run is one fetch, extract, sort, render pass. It returns errNoEntries when
// nothing could be extracted, whatever the cause.
func run(ctx context.Context, p runParams) error {
	if ctx == nil {
		ctx = context.Background()
	}

	mode, err := render.ParseMode(p.cfg.Mode)
	if err != nil {
		return err
	}

	start := p.now()
	_, _ = fmt.Fprintln(p.out, "=== Natalie Comic News Scraper ===")

	client := util.NewHTTPClient(util.HTTPClientOptions{
		UserAgent:        p.cfg.UserAgent,
		CloudflareBypass: p.cfg.CloudflareBypass,
		DebugLogger:      p.log,
	})

	opts := natalie.Options{
		PageURL:         p.cfg.URL,
		LinkPrefix:      p.cfg.LinkPrefix,
		FutureTolerance: time.Duration(p.cfg.FutureToleranceDays) * 24 * time.Hour,
		Now:             p.now,
		Log:             p.log,
	}

	stats := &ui.Stats{}
	entries := scrape(ctx, client, opts, p, stats)

	if len(entries) == 0 {
		p.log.Errorf("No news items found\n")
		return reportedError{errNoEntries}
	}

	news.SortByDate(entries)

	if p.dryRun {
		_, _ = fmt.Fprintf(p.out, "Dry-run: %d entries, nothing written.\n\n", len(entries))
		ui.PrintEntries(p.out, entries)
		return nil
	}

	r := &render.Renderer{
		OutputDir:    p.cfg.Output,
		StaticDir:    p.cfg.StaticDir,
		TemplatesDir: p.cfg.TemplatesDir,
		PageTemplate: p.cfg.PageTemplate,
		Log:          p.log,
	}

	rep, err := r.Render(mode, entries, p.now())
	if err != nil {
		p.log.Errorf("Render failed: %v\n", err)
		return reportedError{fmt.Errorf("render %s output: %w", mode, err)}
	}

	stats.Files = len(rep.Files)
	stats.Bytes = rep.Bytes

	for _, f := range rep.Files {
		p.log.Debugf("Wrote %s\n", f)
	}

	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintln(p.out, "Summary:")
	_, _ = fmt.Fprintf(p.out, "Mode:     %s\n", mode)
	_, _ = fmt.Fprintf(p.out, "Cards:    %d (%d skipped)\n", stats.Cards, stats.Skipped)
	_, _ = fmt.Fprintf(p.out, "Entries:  %d\n", stats.Entries)
	_, _ = fmt.Fprintf(p.out, "Files:    %d (%s)\n", stats.Files, util.Human(stats.Bytes))
	_, _ = fmt.Fprintf(p.out, "Time:     %s\n", p.now().Sub(start).Round(time.Millisecond))
	_, _ = fmt.Fprintln(p.out, "=== Process completed ===")

	return nil
}

// scrape fetches and extracts the listing. Fetch and parse failures are
// logged here and reported as an empty result.
func scrape(ctx context.Context, client *http.Client, opts natalie.Options, p runParams, stats *ui.Stats) []news.Entry {
	p.log.Infof("Scraping news from %s\n", p.cfg.URL)

	var pm *ui.MPBProgressManager
	var handle *ui.ProgressHandle
	if p.cfg.Progress && !p.dryRun {
		pm = ui.NewProgressManager(p.out)
		handle = pm.Register("Cards", "cards")
		opts.Progress = handle
	}

	finish := func() {
		if pm != nil {
			handle.MarkDone()
			pm.Close()
		}
	}

	scr := natalie.NewScraper(client, opts)

	body, err := scr.Fetch(ctx, p.cfg.URL)
	if err != nil {
		finish()
		p.log.Errorf("Error scraping news: %v\n", err)
		return nil
	}

	res, err := scr.Extract(strings.NewReader(body))
	finish()
	if err != nil {
		p.log.Errorf("Error parsing listing page: %v\n", err)
		return nil
	}

	stats.Cards = res.Cards
	stats.Skipped = len(res.Skipped)
	stats.Entries = len(res.Entries)

	p.log.Infof("Successfully scraped %d news items\n", len(res.Entries))

	return res.Entries
}
