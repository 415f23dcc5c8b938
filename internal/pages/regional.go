package pages

import (
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

func buildRegional(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageRegional, "Regional Insights", "Language distribution and localization opportunities")
	if !snap.Merged.Available(merge.ColTags) {
		page.Tabs = []dto.Tab{{Name: "Distribution", Sections: []dto.Section{
			dto.NoticeSection("warning", "Tags are not available in this upload; language analysis is hidden."),
		}}}
		return page
	}

	qs := snap.Merged.Questions
	langCounts := make(map[string]int)
	tagged := 0
	for i := range qs {
		if lang, ok := languageOf(&qs[i]); ok {
			langCounts[lang]++
			tagged++
		}
	}
	if tagged == 0 {
		page.Tabs = []dto.Tab{{Name: "Distribution", Sections: []dto.Section{
			dto.NoticeSection("info", "No language tags are present in this upload."),
		}}}
		return page
	}

	ranked := rankCounts(langCounts)
	nonEnglish := tagged - langCounts["english"]
	nonEnglishShare := float64(nonEnglish) / float64(tagged) * 100

	page.Cards = []dto.Card{
		{Label: "Languages Detected", Value: formatInt(len(langCounts))},
		{Label: "Top Language", Value: displayName(ranked[0].Key), Hint: formatInt(ranked[0].Count) + " questions"},
		{Label: "Non-English Questions", Value: formatInt(nonEnglish), Hint: formatPercent(nonEnglishShare) + " of tagged questions"},
	}

	pieLabels := make([]string, len(ranked))
	pieValues := make([]float64, len(ranked))
	localization := &dto.TableData{Columns: []string{"Language", "Questions", "Share"}}
	for i, r := range ranked {
		pieLabels[i] = displayName(r.Key)
		pieValues[i] = float64(r.Count)
		share := float64(r.Count) / float64(tagged) * 100
		localization.Rows = append(localization.Rows, []string{
			displayName(r.Key), formatInt(r.Count), formatPercent(share),
		})
	}

	distribution := []dto.Section{
		dto.ChartSection("Language Distribution", &dto.Chart{
			Type:   dto.ChartPie,
			Series: []dto.Series{{Name: "Questions", Labels: pieLabels, Values: pieValues}},
		}),
		dto.TableSection("Localization Priorities", localization),
	}

	var overTime []dto.Section
	if snap.Merged.Available(merge.ColTimestamp) {
		if _, series := languageWeekly(qs, 5); len(series) > 0 {
			overTime = append(overTime, dto.ChartSection("Weekly Volume by Language", &dto.Chart{
				Type: dto.ChartLine, XLabel: "Week", YLabel: "Questions",
				Series: series,
			}))
		}
	}
	if len(overTime) == 0 {
		overTime = append(overTime, dto.NoticeSection("info", noTimestampsMsg))
	}

	page.Tabs = []dto.Tab{
		{Name: "Distribution", Sections: distribution},
		{Name: "Over Time", Sections: overTime},
	}
	return page
}
