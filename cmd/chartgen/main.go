package main

import (
	"context"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"financialCharts/internal/config"
	"financialCharts/internal/dataset"
	"financialCharts/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		log.Fatal(err)
	}
	since, err := cfg.VolatilityCutoff()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("dataset: loading tables...")
	tables, err := dataset.Load(cfg.DailyPath(), cfg.SummaryPath(), cfg.MasterPath())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("dataset: loaded %s daily records and %s quarterly records",
		humanize.Comma(int64(len(tables.Daily))), humanize.Comma(int64(len(tables.Summary.Rows))))

	gen := &report.Generator{
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Style:     report.Style{DPI: cfg.DPI},
	}
	results, err := gen.Run(context.Background(), report.NewInput(tables, since, cfg.RiskSinceYear))
	if err != nil {
		log.Fatal(err)
	}
	report.Banner(os.Stdout, cfg.OutputDir, results)
}
