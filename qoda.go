package qoda

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/qodalab/qoda/pkg/annotate"
	"github.com/qodalab/qoda/pkg/codebook"
	"github.com/qodalab/qoda/pkg/compare"
	"github.com/qodalab/qoda/pkg/config"
	"github.com/qodalab/qoda/pkg/report"
	"github.com/qodalab/qoda/pkg/validate"
	"github.com/qodalab/qoda/pkg/watch"
	"github.com/qodalab/qoda/pkg/whowhat"
)

// Version of the qoda toolkit.
const Version = "0.4.0"

// Project is the wired-up application: configuration, codebook and the
// who-what registry of one coding workspace, plus the services built on
// them. All collaborators are injected here, nowhere else.
type Project struct {
	Workdir     string
	Config      *config.Config
	Codebook    *codebook.Codebook
	Annotations *annotate.Annotations
	Registry    *whowhat.Registry
	Logger      *slog.Logger
	Out         io.Writer
}

// Open loads the workspace at workdir: its configuration, its codebook
// and its who-what registry.
func Open(workdir string, opts ...Option) (*Project, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := config.Load(workdir)
	if err != nil {
		return nil, err
	}
	if o.maxCountDiff != nil {
		cfg.MaxCountDiff = o.maxCountDiff
	}

	cb, err := codebook.Load(resolveCodebook(workdir, cfg.Codebook), cfg.IgnoreCode, cfg.Topics)
	if err != nil {
		return nil, err
	}

	reg, err := whowhat.Load(workdir)
	if err != nil {
		return nil, err
	}

	return &Project{
		Workdir:     workdir,
		Config:      cfg,
		Codebook:    cb,
		Annotations: annotate.New(cb),
		Registry:    reg,
		Logger:      o.logger,
		Out:         o.out,
	}, nil
}

// resolveCodebook prefers a codebook next to the current directory (the
// project root) and falls back to one inside the workdir.
func resolveCodebook(workdir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(workdir, path)
}

// Check validates every registered extract file and returns the exit
// signal: 0 if clean, else the capped problem count.
func (p *Project) Check() int {
	checker := validate.NewChecker(p.Annotations, p.Out, p.Logger)
	return validate.ExitCode(checker.CheckAll(p.Registry))
}

// CheckFile validates a single registered file, for watch mode.
func (p *Project) CheckFile(file string) int {
	checker := validate.NewChecker(p.Annotations, p.Out, p.Logger)
	return checker.CheckFile(file, p.Registry.Coder(file), p.Registry.Block(file))
}

// Compare cross-checks all registered file pairs, visiting each coder's
// perspective in turn. onlyFor restricts the output to one coder's
// blocks; empty means everyone. Returns the exit signal.
func (p *Project) Compare(onlyFor string) (int, error) {
	comparator := compare.New(p.Annotations, *p.Config.MaxCountDiff, p.Out, p.Logger)
	for _, coder := range p.Registry.Coders() {
		if onlyFor != "" && onlyFor != coder {
			continue // suppress this block of messages
		}
		fmt.Fprintf(p.Out, "\n\n#################### %s's: ####################\n\n", coder)
		for _, pair := range p.Registry.Pairs() {
			if coder != pair.Coder1 && coder != pair.Coder2 {
				continue
			}
			ctx := compare.Context{
				File1:  pair.File1,
				Coder1: pair.Coder1,
				File2:  pair.File2,
				Coder2: pair.Coder2,
				Block:  p.Registry.Block(pair.File1),
			}
			if err := comparator.CompareFiles(ctx); err != nil {
				return comparator.ExitCode(), err
			}
		}
	}
	return comparator.ExitCode(), nil
}

// Report writes the coding-progress report.
func (p *Project) Report() {
	report.Progress(p.Out, p.Registry)
}

// Watch re-validates files as they change, until ctx is cancelled.
func (p *Project) Watch(ctx context.Context) error {
	watcher := watch.New(p.Registry.Dirs(), func(path string) {
		p.Logger.Info("rechecking", "file", path)
		if problems := p.CheckFile(path); problems == 0 {
			fmt.Fprintf(p.Out, "---- %s: OK\n", path)
		}
	}, p.Logger)
	return watcher.Start(ctx)
}
