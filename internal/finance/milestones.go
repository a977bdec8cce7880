package finance

import (
	"time"

	"financialCharts/internal/dataset"
)

var DefaultMilestones = []Milestone{
	{Date: time.Date(2007, 1, 9, 0, 0, 0, 0, time.UTC), Label: "iPhone Launch"},
	{Date: time.Date(2010, 4, 3, 0, 0, 0, 0, time.UTC), Label: "iPad Launch"},
	{Date: time.Date(2011, 10, 5, 0, 0, 0, 0, time.UTC), Label: "Steve Jobs"},
}

// LocateMilestones keeps the milestones whose exact date is a trading day,
// paired with the first close recorded on it.
func LocateMilestones(daily []dataset.DailyRecord, milestones []Milestone) []MilestonePoint {
	var out []MilestonePoint
	for _, m := range milestones {
		for _, r := range daily {
			if r.Date.Equal(m.Date) {
				out = append(out, MilestonePoint{Milestone: m, Close: r.Close})
				break
			}
		}
	}
	return out
}
