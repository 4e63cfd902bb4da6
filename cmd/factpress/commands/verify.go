package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/factpress/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dir string `short:"d" help:"Site directory to check (defaults to output_dir)" type:"path"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, logger, err := root.loadConfig()
	if err != nil {
		return err
	}
	dir := v.Dir
	if dir == "" {
		dir = cfg.OutputDir
	}

	verifier, err := linkverify.NewVerifier(dir, cfg.BaseURL)
	if err != nil {
		return err
	}
	report, err := verifier.Verify()
	if err != nil {
		return err
	}

	for _, b := range report.Broken {
		fmt.Printf("%s: broken %s link %q (missing %s)\n", b.Page, b.Tag, b.URL, b.Target)
	}
	logger.Info("Link verification finished",
		slog.Int("pages", report.Pages), slog.Int("links", report.Links), slog.Int("broken", len(report.Broken)))
	if report.OK() {
		fmt.Printf("Checked %d links on %d pages: no broken links\n", report.Links, report.Pages)
	}
	return report.Err()
}
