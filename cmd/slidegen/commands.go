package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/VantageDataChat/slidegen"
	"github.com/VantageDataChat/slidegen/internal/contentfile"
)

func loadContent(path string) (*slidegen.PresentationContent, error) {
	content, err := contentfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return content, nil
}

// outputFor derives <dir>/<content base name>.pptx.
func outputFor(dir, content string) string {
	base := strings.TrimSuffix(filepath.Base(content), filepath.Ext(content))
	return filepath.Join(dir, base+".pptx")
}

func newGenerateCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate <content-file>",
		Short: "Build a deck from scratch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = outputFor(filepath.Dir(args[0]), args[0])
			}
			st, err := a.run(job{content: args[0], output: output})
			if err != nil {
				return err
			}
			a.report(output, st)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .pptx path (default next to the content file)")
	return cmd
}

func newTemplateCommand(a *app) *cobra.Command {
	var output, template string
	cmd := &cobra.Command{
		Use:   "template <content-file>",
		Short: "Fill an existing deck's placeholders with content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = template
			}
			st, err := a.run(job{content: args[0], template: template, output: output})
			if err != nil {
				return err
			}
			a.report(output, st)
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template .pptx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .pptx path (default rewrites the template in place)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newBatchCommand(a *app) *cobra.Command {
	var outDir, template string
	cmd := &cobra.Command{
		Use:   "batch <content-file>...",
		Short: "Build several decks concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := make([]job, len(args))
			seen := make(map[string]string, len(args))
			for i, content := range args {
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(content)
				}
				out := outputFor(dir, content)
				if prev, dup := seen[out]; dup {
					return fmt.Errorf("%s and %s both write %s", prev, content, out)
				}
				seen[out] = content
				jobs[i] = job{content: content, template: template, output: out}
			}
			if template != "" {
				if _, err := os.Stat(template); err != nil {
					return fmt.Errorf("%w: %s", slidegen.ErrTemplateNotFound, template)
				}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Batch.Concurrency)

			results := make([]*slidegen.Stats, len(jobs))
			errs := make([]error, len(jobs))
			for i, j := range jobs {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						errs[i] = err
						return err
					}
					results[i], errs[i] = a.run(j)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var failed []error
			for i, j := range jobs {
				if errs[i] != nil {
					failed = append(failed, fmt.Errorf("%s: %w", j.content, errs[i]))
					continue
				}
				a.report(j.output, results[i])
			}
			a.log.Info("batch finished", "decks", len(jobs), "failed", len(failed))
			return errors.Join(failed...)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "directory for the decks (default next to each content file)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template .pptx shared by every deck")
	cmd.Flags().Int("concurrency", 4, "decks built at the same time")
	return cmd
}

func newInspectCommand(a *app) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "inspect <deck.pptx>",
		Short: "List the slides and shapes of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := slidegen.Open(args[0])
			if err != nil {
				return err
			}
			if text {
				fmt.Fprintln(a.stdout, deck.ExtractText())
				return nil
			}
			fmt.Fprintf(a.stdout, "%s: %d slides, %d media parts, %.2fx%.2f in\n", args[0], len(deck.Slides),
				len(deck.Media), slidegen.EMUToInch(deck.SlideSize.CX), slidegen.EMUToInch(deck.SlideSize.CY))
			for i, s := range deck.Slides {
				fmt.Fprintf(a.stdout, "slide %d (%s)\n", i+1, s.Part)
				for _, sh := range s.Shapes {
					kind := "text"
					detail := firstLine(sh.Text)
					if sh.Picture {
						kind, detail = "picture", sh.ImagePart
					}
					fmt.Fprintf(a.stdout, "  #%d %-7s %-12s %s\n", sh.ID, kind, sh.Name, detail)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the deck's text only")
	return cmd
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "slidegen %s\n", slidegen.Version)
			return nil
		},
	}
}
