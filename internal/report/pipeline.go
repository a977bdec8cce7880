package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Generator renders the catalogue into OutputDir.
type Generator struct {
	OutputDir string
	Workers   int // charts rendered concurrently; 1 renders them one by one
	Style     Style
	Charts    []Chart // defaults to Catalogue()
}

// Result describes one catalogue entry after a run.
type Result struct {
	Chart Chart
	Path  string
	Bytes int
	Empty bool // aggregate was empty, the file holds bare axes
}

func (g *Generator) charts() []Chart {
	if len(g.Charts) > 0 {
		return g.Charts
	}
	return Catalogue()
}

// Run renders every chart and writes it to OutputDir, which must exist. A chart
// whose aggregate is empty is written as empty axes; any other failure stops
// the run.
func (g *Generator) Run(ctx context.Context, in *Input) ([]Result, error) {
	style := g.Style
	if style.DPI <= 0 {
		style = DefaultStyle()
	}
	workers := g.Workers
	if workers < 1 {
		workers = 1
	}

	list := g.charts()
	results := make([]Result, len(list))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range list {
		i, c := i, c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := g.generate(c, in, style)
			if err != nil {
				return fmt.Errorf("chart %d (%s): %w", c.Ordinal, c.Slug, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) generate(c Chart, in *Input, style Style) (Result, error) {
	log.Printf("report: generating chart %d: %s...", c.Ordinal, c.Step)
	res := Result{Chart: c, Path: filepath.Join(g.OutputDir, c.FileName())}
	img, err := c.render(in, style)
	if errors.Is(err, ErrNoData) {
		log.Printf("report: chart %d: %v, writing empty axes", c.Ordinal, err)
		res.Empty = true
		img, err = renderEmpty(c.Title, style)
	}
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(res.Path, img, 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", res.Path, err)
	}
	res.Bytes = len(img)
	log.Printf("report: wrote %s (%s)", res.Path, humanize.Bytes(uint64(len(img))))
	return res, nil
}

// Banner writes the completion summary listing every chart of the run.
func Banner(w io.Writer, dir string, results []Result) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\nCHART GENERATION COMPLETE\n%s\n", rule, rule)
	fmt.Fprintf(w, "\nGenerated %d business-focused charts in the '%s/' directory:\n", len(results), dir)
	for _, r := range results {
		line := fmt.Sprintf("%3d. %s", r.Chart.Ordinal, r.Chart.Title)
		if r.Empty {
			line += " (no data)"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nAll charts are ready for business presentation.\n%s\n", rule)
}
