package dataset

import (
	"fmt"
	"sort"
)

const (
	colDate          = "date"
	colClose         = "close"
	colYear          = "year"
	colReturn1D      = "return_1d"
	colVolatility20D = "volatility_20d"

	colFiscalYear    = "fiscal_year"
	colFiscalQuarter = "fiscal_quarter"
	colClosePrice    = "close_price"

	ColRevenueTotal          = "revenue_total"
	ColRevenueIPhone         = "revenue_iphone"
	ColRevenueServices       = "revenue_services"
	ColRevenueMac            = "revenue_mac"
	ColRevenueIPad           = "revenue_ipad"
	ColRevenueWearablesOther = "revenue_wearables_other"

	ColShareIPhone         = "share_iphone"
	ColShareServices       = "share_services"
	ColShareMac            = "share_mac"
	ColShareIPad           = "share_ipad"
	ColShareWearablesOther = "share_wearables_other"
)

// Load reads the three input tables. Any read or parse failure aborts.
func Load(dailyPath, summaryPath, masterPath string) (*Tables, error) {
	daily, err := LoadDaily(dailyPath)
	if err != nil {
		return nil, err
	}
	summary, err := LoadSummary(summaryPath)
	if err != nil {
		return nil, err
	}
	master, err := LoadMaster(masterPath)
	if err != nil {
		return nil, err
	}
	return &Tables{Daily: daily, Summary: summary, Master: master}, nil
}

// LoadDaily returns the daily rows sorted by date. The year column is derived
// from the date when absent.
func LoadDaily(path string) ([]DailyRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require(colDate, colClose, colReturn1D, colVolatility20D); err != nil {
		return nil, err
	}
	out := make([]DailyRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		var rec DailyRecord
		if rec.Date, err = parseDate(t.cell(row, colDate)); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if rec.Close, err = parseFloat(t.cell(row, colClose)); err != nil {
			return nil, fmt.Errorf("%s:%d: close: %w", path, line, err)
		}
		if rec.Return1D, err = parseFloat(t.cell(row, colReturn1D)); err != nil {
			return nil, fmt.Errorf("%s:%d: return_1d: %w", path, line, err)
		}
		if rec.Volatility20D, err = parseFloat(t.cell(row, colVolatility20D)); err != nil {
			return nil, fmt.Errorf("%s:%d: volatility_20d: %w", path, line, err)
		}
		rec.Year = rec.Date.Year()
		if y := t.cell(row, colYear); !isMissing(y) {
			if rec.Year, err = parseInt(y); err != nil {
				return nil, fmt.Errorf("%s:%d: year: %w", path, line, err)
			}
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

var summaryNumericColumns = []string{
	ColRevenueTotal, ColRevenueIPhone, ColRevenueServices, ColRevenueMac, ColRevenueIPad, ColRevenueWearablesOther,
	ColShareIPhone, ColShareServices, ColShareMac, ColShareIPad, ColShareWearablesOther,
}

// LoadSummary keeps the file order; callers sort by fiscal key where needed.
// Share columns are optional and load as NaN when absent.
func LoadSummary(path string) (*SummaryTable, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require(colFiscalYear, colFiscalQuarter,
		ColRevenueTotal, ColRevenueIPhone, ColRevenueServices, ColRevenueMac, ColRevenueIPad, ColRevenueWearablesOther); err != nil {
		return nil, err
	}
	rows := make([]QuarterlySummary, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		var q QuarterlySummary
		if q.FiscalYear, err = parseInt(t.cell(row, colFiscalYear)); err != nil {
			return nil, fmt.Errorf("%s:%d: fiscal_year: %w", path, line, err)
		}
		q.FiscalQuarter = t.cell(row, colFiscalQuarter)
		fields := map[string]*float64{
			ColRevenueTotal:          &q.RevenueTotal,
			ColRevenueIPhone:         &q.RevenueIPhone,
			ColRevenueServices:       &q.RevenueServices,
			ColRevenueMac:            &q.RevenueMac,
			ColRevenueIPad:           &q.RevenueIPad,
			ColRevenueWearablesOther: &q.RevenueWearablesOther,
			ColShareIPhone:           &q.ShareIPhone,
			ColShareServices:         &q.ShareServices,
			ColShareMac:              &q.ShareMac,
			ColShareIPad:             &q.ShareIPad,
			ColShareWearablesOther:   &q.ShareWearablesOther,
		}
		for col, dst := range fields {
			if *dst, err = parseFloat(t.cell(row, col)); err != nil {
				return nil, fmt.Errorf("%s:%d: %s: %w", path, line, col, err)
			}
		}
		rows = append(rows, q)
	}
	var present []string
	for _, col := range summaryNumericColumns {
		if t.has(col) {
			present = append(present, col)
		}
	}
	return NewSummaryTable(rows, present...), nil
}

func LoadMaster(path string) ([]QuarterlyMaster, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.require(colFiscalYear, colFiscalQuarter, colClosePrice); err != nil {
		return nil, err
	}
	out := make([]QuarterlyMaster, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		var m QuarterlyMaster
		if m.FiscalYear, err = parseInt(t.cell(row, colFiscalYear)); err != nil {
			return nil, fmt.Errorf("%s:%d: fiscal_year: %w", path, line, err)
		}
		m.FiscalQuarter = t.cell(row, colFiscalQuarter)
		if m.ClosePrice, err = parseFloat(t.cell(row, colClosePrice)); err != nil {
			return nil, fmt.Errorf("%s:%d: close_price: %w", path, line, err)
		}
		out = append(out, m)
	}
	return out, nil
}
