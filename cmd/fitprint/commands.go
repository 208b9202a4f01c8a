package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/FitPrint/internal/config"
	"github.com/piwi3910/FitPrint/internal/engine"
	"github.com/piwi3910/FitPrint/internal/export"
	"github.com/piwi3910/FitPrint/internal/importer"
	"github.com/piwi3910/FitPrint/internal/logger"
	"github.com/piwi3910/FitPrint/internal/model"
	"github.com/piwi3910/FitPrint/internal/project"
)

// flagKeys maps command flags to their configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"paper":        "layout.paper",
	"paper-width":  "layout.paper_width",
	"paper-height": "layout.paper_height",
	"orientation":  "layout.orientation",
	"margin":       "layout.margin",
	"spacing":      "layout.spacing",
	"rotate":       "layout.rotation",
	"strategy":     "layout.strategy",
	"order":        "layout.order",
	"seed":         "layout.seed",
	"consolidate":  "layout.consolidate",
	"best":         "layout.best",
	"scale":        "layout.scale",
	"min-size":     "layout.min_size",
	"max-size":     "layout.max_size",
	"dpi":          "layout.dpi",
	"photo-width":  "layout.photo_width",
}

// cli carries the state shared by the commands of one invocation.
type cli struct {
	out     io.Writer
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

// exportPaths holds the output files requested from pack.
type exportPaths struct {
	pdf, preview, labels, dxf, xlsx, snapshot string
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "fitprint",
		Short:         "FitPrint packs photo prints onto as few pages as possible.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.log.Sync()
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default ./fitprint.yaml or $HOME/.fitprint/fitprint.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console, json")

	root.AddCommand(c.packCmd(), c.validateCmd(), c.compareCmd(), c.papersCmd())
	return root
}

// setup loads the configuration with the command's flags bound over it and
// builds the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	v := config.NewViper(c.cfgFile)
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func addLayoutFlags(cmd *cobra.Command) {
	ps := model.DefaultProjectSettings()
	f := cmd.Flags()
	f.String("paper", model.DefaultPaper().Key, "paper preset key or \"custom\"")
	f.Float64("paper-width", 0, "custom paper width in mm")
	f.Float64("paper-height", 0, "custom paper height in mm")
	f.String("orientation", string(ps.Orientation), "paper orientation: auto, portrait, landscape")
	f.Float64("margin", ps.OuterMargin, "outer margin in mm on every side")
	f.Float64("spacing", ps.Spacing, "spacing between prints in mm")
	f.Bool("rotate", ps.RotationAllowed, "allow 90 degree rotation")
	f.String("strategy", string(ps.Strategy), "placement strategy: "+strings.Join(model.StrategyNames(), ", "))
	f.String("order", string(ps.Order), "item order: "+strings.Join(model.OrderNames(), ", "))
	f.Int64("seed", ps.Seed, "seed for the balanced order")
	f.Bool("consolidate", ps.Consolidate, "move prints off sparse pages after packing")
	f.Bool("best", false, "try every strategy and keep the fewest pages")
	f.String("scale", string(ps.ScaleMode), "scale mode: "+strings.Join(model.ScaleModes(), ", "))
	f.Float64("min-size", ps.MinSize, "shortest print side after scaling in mm")
	f.Float64("max-size", ps.MaxSize, "longest print side after scaling in mm")
	f.Float64("dpi", ps.DPI, "resolution used to size image files")
	f.Float64("photo-width", ps.DefaultWidth, "print width in mm for image files")
}

// prepare imports the orders and resolves paper, orientation and scaling.
func (c *cli) prepare(paths []string) (engine.Job, error) {
	paper, err := c.cfg.Layout.ResolvePaper()
	if err != nil {
		return engine.Job{}, err
	}
	photos, err := c.loadPhotos(paths)
	if err != nil {
		return engine.Job{}, err
	}
	job := engine.PrepareJob(photos, paper, c.cfg.Layout.ProjectSettings())
	c.log.Debug("job prepared",
		zap.String("paper", job.Paper.Name),
		zap.Float64("page_width", job.Settings.PageWidth),
		zap.Float64("page_height", job.Settings.PageHeight),
		zap.Int("items", len(job.Items)))
	return job, nil
}

// loadPhotos imports every order file. Rows that fail are logged and
// skipped; an order that yields no photos at all is an error.
func (c *cli) loadPhotos(paths []string) ([]model.Photo, error) {
	var photos []model.Photo
	for _, path := range paths {
		var result importer.ImportResult
		if importer.IsImageFile(path) {
			result = importer.ImportImages([]string{path}, c.cfg.Layout.PhotoWidth)
		} else {
			result = importer.ImportFile(path)
		}
		for _, w := range result.Warnings {
			c.log.Warn(w, zap.String("file", path))
		}
		for _, e := range result.Errors {
			c.log.Error(e, zap.String("file", path))
		}
		c.log.Info("order imported", zap.String("file", path), zap.Int("photos", len(result.Photos)))
		photos = append(photos, result.Photos...)
	}
	if len(photos) == 0 {
		return nil, errors.New("no photos imported")
	}
	return photos, nil
}

// ─── pack ──────────────────────────────────────────────────

func (c *cli) packCmd() *cobra.Command {
	var out exportPaths
	cmd := &cobra.Command{
		Use:   "pack <order>...",
		Short: "Lay out the photos of one or more orders and write the exports.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.runPack(args, out)
		},
	}
	addLayoutFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&out.pdf, "pdf", "", "write the print-ready PDF to this file")
	f.StringVar(&out.preview, "preview", "", "write the proof PDF to this file")
	f.StringVar(&out.labels, "labels", "", "write QR back labels to this PDF")
	f.StringVar(&out.dxf, "dxf", "", "write trim lines to this DXF")
	f.StringVar(&out.xlsx, "xlsx", "", "write the placement report to this Excel file")
	f.StringVar(&out.snapshot, "snapshot", "", "save the layout to this snapshot file")
	return cmd
}

func (c *cli) runPack(paths []string, out exportPaths) error {
	job, err := c.prepare(paths)
	if err != nil {
		return err
	}

	layout, packErr := job.Pack(c.cfg.Layout.Best, engine.WithLogger(c.log))
	if errors.Is(packErr, engine.ErrInvalidInput) {
		return packErr
	}
	c.printLayout(layout)
	if len(layout.Pages) == 0 {
		return packErr
	}

	if err := c.writeExports(job, layout, out); err != nil {
		return err
	}
	return packErr
}

func (c *cli) writeExports(job engine.Job, layout model.Layout, out exportPaths) error {
	type target struct {
		path  string
		what  string
		write func(string) error
	}
	targets := []target{
		{out.pdf, "print PDF", func(p string) error {
			return export.ExportPrintPDF(p, layout, job.Photos, job.Paper, job.Margin)
		}},
		{out.preview, "preview PDF", func(p string) error {
			return export.ExportPreviewPDF(p, layout, job.Paper, job.Margin)
		}},
		{out.labels, "labels", func(p string) error { return export.ExportLabels(p, layout) }},
		{out.dxf, "DXF", func(p string) error { return export.ExportDXF(p, layout, export.DefaultPageGap) }},
		{out.xlsx, "Excel report", func(p string) error { return export.ExportXLSX(p, layout) }},
		{out.snapshot, "snapshot", func(p string) error {
			return project.SaveSnapshot(p, project.NewSnapshot(layout, job.Paper, job.Margin))
		}},
	}
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		if err := t.write(t.path); err != nil {
			return fmt.Errorf("writing %s: %w", t.what, err)
		}
		c.log.Info("export written", zap.String("kind", t.what), zap.String("path", t.path))
		fmt.Fprintf(c.out, "Wrote %s to %s\n", t.what, t.path)
	}
	return nil
}

func (c *cli) printLayout(layout model.Layout) {
	stats := layout.Stats()
	fmt.Fprintf(c.out, "Strategy:   %s\n", layout.Strategy)
	fmt.Fprintf(c.out, "Page:       %.1f x %.1f mm printable\n", layout.PageWidth, layout.PageHeight)
	fmt.Fprintf(c.out, "Pages:      %d\n", stats.Pages)
	fmt.Fprintf(c.out, "Prints:     %d placed, %d rotated\n", layout.PlacedCount(), stats.RotatedItems)
	fmt.Fprintf(c.out, "Efficiency: %.1f%%\n", stats.Efficiency)
	for _, p := range layout.Pages {
		fmt.Fprintf(c.out, "  page %d: %d prints, %.1f%% used\n",
			p.Number, len(p.Items), p.Efficiency(layout.PageWidth, layout.PageHeight))
	}
	printRejected(c.out, layout.Rejected)
	if len(layout.Unplaced) > 0 {
		fmt.Fprintf(c.out, "Unplaced:   %d prints\n", len(layout.Unplaced))
		for _, it := range layout.Unplaced {
			fmt.Fprintf(c.out, "  %s (%s) %.1f x %.1f mm\n", it.Label, it.ID, it.Width, it.Height)
		}
	}
}

func printRejected(w io.Writer, rejected []model.RejectedItem) {
	if len(rejected) == 0 {
		return
	}
	fmt.Fprintf(w, "Too large:  %d prints\n", len(rejected))
	for _, r := range rejected {
		fmt.Fprintf(w, "  %s (%s) %.1f x %.1f mm, max %.1f x %.1f mm\n",
			r.Item.Label, r.Item.ID, r.Item.Width, r.Item.Height, r.MaxWidth, r.MaxHeight)
	}
}

// ─── validate ──────────────────────────────────────────────

func (c *cli) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <order>...",
		Short: "Check that every print fits the printable area.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			job, err := c.prepare(args)
			if err != nil {
				return err
			}
			rejected := engine.Validate(job.Settings, job.Items)
			if len(rejected) > 0 {
				printRejected(c.out, rejected)
				return fmt.Errorf("%w: %d of %d prints", engine.ErrOversize, len(rejected), len(job.Items))
			}
			fmt.Fprintf(c.out, "All %d prints fit %s (%.1f x %.1f mm printable).\n",
				len(job.Items), job.Paper.Name, job.Settings.PageWidth, job.Settings.PageHeight)
			return nil
		},
	}
	addLayoutFlags(cmd)
	return cmd
}

// ─── compare ───────────────────────────────────────────────

func (c *cli) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <order>...",
		Short: "Pack the orders with every strategy and compare the results.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			job, err := c.prepare(args)
			if err != nil {
				return err
			}
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(job.Settings), job.Items, engine.WithLogger(c.log))
			best := engine.Best(results)

			fmt.Fprintf(c.out, "%-32s %6s %7s %7s\n", "SCENARIO", "PAGES", "PLACED", "WASTE")
			for i, r := range results {
				mark := ""
				if i == best {
					mark = " *"
				}
				if r.Err != nil && len(r.Layout.Pages) == 0 {
					fmt.Fprintf(c.out, "%-32s failed: %v\n", r.Scenario.Name, r.Err)
					continue
				}
				fmt.Fprintf(c.out, "%-32s %6d %7d %6.1f%%%s\n",
					r.Scenario.Name, r.PagesUsed, r.PlacedCount, r.WastePercent, mark)
			}
			return nil
		},
	}
	addLayoutFlags(cmd)
	return cmd
}

// ─── papers ────────────────────────────────────────────────

func (c *cli) papersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "papers",
		Short: "List the built-in paper sizes.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, p := range model.PaperSizes {
				fmt.Fprintf(c.out, "%-10s %-14s %6.0f x %.0f mm\n", p.Key, p.Name, p.Width, p.Height)
			}
			return nil
		},
	}
}
