package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VantageDataChat/slidegen"
	"github.com/VantageDataChat/slidegen/internal/config"
	"github.com/VantageDataChat/slidegen/internal/logging"
	"github.com/VantageDataChat/slidegen/internal/metrics"
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"slide-size":   "slide.size",
	"dpi":          "image.dpi",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"metrics-file": "metrics.file",
	"concurrency":  "batch.concurrency",
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *slog.Logger
	metrics    *metrics.Metrics
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "slidegen",
		Short:         "Build PowerPoint decks from content files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				return nil
			}
			return a.metrics.WriteFile(a.cfg.Metrics.File)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "config file (default ./slidegen.yaml)")
	pf.String("slide-size", slidegen.SizeScreen4x3, "slide size: screen4x3, screen16x9, screen16x10, A4, letter")
	pf.Float64("dpi", slidegen.DefaultDPI, "resolution used to size images")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("metrics-file", "", "write Prometheus metrics to this file")

	root.AddCommand(
		newGenerateCommand(a),
		newTemplateCommand(a),
		newBatchCommand(a),
		newInspectCommand(a),
		newVersionCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: a.stderr})
	a.metrics = metrics.New()
	return nil
}

// mode names a kind of run in logs and metrics.
const (
	modeGenerate = "generate"
	modeTemplate = "template"
)

// job is one deck to build.
type job struct {
	content  string
	template string
	output   string
}

func (j job) mode() string {
	if j.template != "" {
		return modeTemplate
	}
	return modeGenerate
}

// run builds one deck and records it.
func (a *app) run(j job) (*slidegen.Stats, error) {
	log := a.log.With("content", j.content, "output", j.output)
	start := time.Now()

	st, err := a.build(j, log)
	a.metrics.Observe(j.mode(), st, time.Since(start), err)
	if err != nil {
		log.Error("deck failed", "error", err)
		return nil, err
	}
	return st, nil
}

func (a *app) build(j job, log *slog.Logger) (*slidegen.Stats, error) {
	content, err := loadContent(j.content)
	if err != nil {
		return nil, err
	}
	opts := a.cfg.Options(log)
	if j.template != "" {
		return slidegen.RewriteTemplate(content, j.template, j.output, opts...)
	}
	return slidegen.Generate(content, j.output, opts...)
}

func (a *app) report(output string, st *slidegen.Stats) {
	fmt.Fprintf(a.stdout, "%s: %d slides, %d images embedded", output, st.Slides, st.ImagesEmbedded)
	if st.ImagesSkipped > 0 {
		fmt.Fprintf(a.stdout, ", %d missing", st.ImagesSkipped)
	}
	if st.SlidesRemoved > 0 || st.PicturesRemoved > 0 {
		fmt.Fprintf(a.stdout, ", removed %d slides and %d pictures", st.SlidesRemoved, st.PicturesRemoved)
	}
	fmt.Fprintln(a.stdout)
}
