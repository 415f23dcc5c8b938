package pages

import (
	"sort"
	"strings"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

func buildFeedback(snap *snapshot.Snapshot, search string) *dto.PageResponse {
	page := basePage(snap, PageFeedback, "Feedback & Satisfaction", "User feedback, scores, and engagement")
	k := snap.KPIs

	page.Cards = []dto.Card{
		{Label: "Unique Users", Value: formatInt(k.UniqueUsers)},
		{Label: "Unique Sessions", Value: formatInt(k.UniqueSessions)},
		{Label: "Avg Questions / Session", Value: floatOrNA(k.AvgQuestionsPerSession, 1)},
		{Label: "Feedback Entries", Value: formatInt(k.FeedbackEntries)},
		{Label: "General Feedback", Value: formatInt(k.GeneralFeedbackCount)},
	}

	page.Tabs = []dto.Tab{
		{Name: "Scores", Sections: scoreSections(snap)},
		{Name: "Users & Sessions", Sections: engagementSections(snap)},
		{Name: "Tags", Sections: tagSections(snap)},
		{Name: "General", Sections: generalSections(snap, search)},
	}
	return page
}

func scoreSections(snap *snapshot.Snapshot) []dto.Section {
	if !snap.Merged.Available(merge.ColScores) {
		return []dto.Section{dto.NoticeSection("warning", "Feedback scores are not available in this upload.")}
	}
	qs := snap.Merged.Questions

	var values []float64
	nameCounts := make(map[string]int)
	topicCounts := make(map[string]int)
	positive, negative := 0, 0
	for i := range qs {
		q := &qs[i]
		for _, score := range q.Scores {
			if score.Name != "" {
				nameCounts[score.Name]++
			}
			if score.Value == nil {
				continue
			}
			values = append(values, *score.Value)
			if *score.Value >= 0.5 {
				positive++
			} else {
				negative++
			}
		}
		if q.HasFeedback() {
			topicCounts[q.TopicName]++
		}
	}

	var sections []dto.Section
	if len(values) > 0 {
		sections = append(sections,
			dto.ChartSection("Score Distribution", histogramChart(values, 10, 2, "Score", "Entries")),
			dto.NotesSection("Sentiment",
				formatInt(positive)+" positive scores (0.5 and above).",
				formatInt(negative)+" negative scores (below 0.5)."),
		)
	}
	if len(nameCounts) > 0 {
		ranked := rankCounts(nameCounts)
		labels := make([]string, len(ranked))
		counts := make([]float64, len(ranked))
		for i, r := range ranked {
			labels[i] = r.Key
			counts[i] = float64(r.Count)
		}
		sections = append(sections, dto.ChartSection("Entries by Score Name", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Score", YLabel: "Entries",
			Series: []dto.Series{{Name: "Entries", Labels: labels, Values: counts}},
		}))
	}

	if snap.Merged.Available(merge.ColTimestamp) {
		withFeedback := make([]merge.QuestionRecord, 0, len(qs))
		for i := range qs {
			if qs[i].HasFeedback() {
				withFeedback = append(withFeedback, qs[i])
			}
		}
		days, counts := countsByPeriod(withFeedback, stats.DayKey)
		if len(days) > 0 {
			sections = append(sections, dto.ChartSection("Feedback per Day", &dto.Chart{
				Type: dto.ChartLine, XLabel: "Day", YLabel: "Entries",
				Series: []dto.Series{{Name: "Feedback", Labels: days, Values: counts}},
			}))
		}
	}

	if ranked := rankCounts(topicCounts); len(ranked) > 0 {
		if len(ranked) > 15 {
			ranked = ranked[:15]
		}
		table := &dto.TableData{Columns: []string{"Topic", "Feedback Entries"}}
		for _, r := range ranked {
			table.Rows = append(table.Rows, []string{r.Key, formatInt(r.Count)})
		}
		sections = append(sections, dto.TableSection("Topics Receiving Feedback", table))
	}

	if len(sections) == 0 {
		sections = append(sections, dto.NoticeSection("info", "No scores are present in this upload."))
	}
	return sections
}

func engagementSections(snap *snapshot.Snapshot) []dto.Section {
	hasSessions := snap.Merged.Available(merge.ColSessionID)
	hasUsers := snap.Merged.Available(merge.ColUserID)
	if !hasSessions && !hasUsers {
		return []dto.Section{dto.NoticeSection("warning", "Session and user identifiers are not available in this upload.")}
	}
	qs := snap.Merged.Questions
	var sections []dto.Section

	if hasSessions {
		perSession := make(map[string]int)
		for i := range qs {
			if qs[i].SessionID != "" {
				perSession[qs[i].SessionID]++
			}
		}
		sizes := make([]float64, 0, len(perSession))
		single, multi := 0, 0
		for _, n := range perSession {
			sizes = append(sizes, float64(n))
			if n == 1 {
				single++
			} else {
				multi++
			}
		}
		if len(sizes) > 0 {
			sections = append(sections,
				dto.ChartSection("Questions per Session", histogramChart(sizes, 10, 0, "Questions", "Sessions")),
				dto.NotesSection("Sessions",
					formatInt(single)+" sessions asked a single question.",
					formatInt(multi)+" sessions asked more than one."),
			)
		}

		if snap.Merged.Available(merge.ColTimestamp) {
			sessionsByDay := make(map[string]map[string]struct{})
			for i := range qs {
				q := &qs[i]
				if q.SessionID == "" || q.Timestamp.IsZero() {
					continue
				}
				day := stats.DayKey(q.Timestamp)
				if sessionsByDay[day] == nil {
					sessionsByDay[day] = make(map[string]struct{})
				}
				sessionsByDay[day][q.SessionID] = struct{}{}
			}
			days := sortedKeys(sessionsByDay)
			counts := make([]float64, len(days))
			for i, day := range days {
				counts[i] = float64(len(sessionsByDay[day]))
			}
			if len(days) > 0 {
				sections = append(sections, dto.ChartSection("Active Sessions per Day", &dto.Chart{
					Type: dto.ChartLine, XLabel: "Day", YLabel: "Sessions",
					Series: []dto.Series{{Name: "Sessions", Labels: days, Values: counts}},
				}))
			}
		}
	}

	if hasUsers {
		perUser := make(map[string]int)
		for i := range qs {
			if qs[i].UserID != "" {
				perUser[qs[i].UserID]++
			}
		}
		counts := make([]float64, 0, len(perUser))
		oneTime, repeat := 0, 0
		for _, n := range perUser {
			counts = append(counts, float64(n))
			if n == 1 {
				oneTime++
			} else {
				repeat++
			}
		}
		if len(counts) > 0 {
			sections = append(sections,
				dto.ChartSection("Questions per User", histogramChart(counts, 10, 0, "Questions", "Users")),
				dto.NotesSection("Users",
					formatInt(oneTime)+" users asked once.",
					formatInt(repeat)+" users came back."),
			)
		}

		ranked := rankCounts(perUser)
		if len(ranked) > 20 {
			ranked = ranked[:20]
		}
		if len(ranked) > 0 {
			table := &dto.TableData{Columns: []string{"User", "Questions"}}
			for _, r := range ranked {
				table.Rows = append(table.Rows, []string{truncateID(r.Key, 8), formatInt(r.Count)})
			}
			sections = append(sections, dto.TableSection("Most Active Users", table))
		}
	}

	return sections
}

func tagSections(snap *snapshot.Snapshot) []dto.Section {
	if !snap.Merged.Available(merge.ColTags) {
		return []dto.Section{dto.NoticeSection("warning", "Tags are not available in this upload.")}
	}
	qs := snap.Merged.Questions

	categoryCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	roleCounts := make(map[string]int)
	for i := range qs {
		for _, tag := range qs[i].Tags {
			tagCounts[tag]++
			cat, value, ok := splitTag(tag)
			if !ok {
				categoryCounts["other"]++
				continue
			}
			categoryCounts[cat]++
			if cat == "role" {
				roleCounts[strings.ToLower(value)]++
			}
		}
	}
	if len(tagCounts) == 0 {
		return []dto.Section{dto.NoticeSection("info", "No tags are present in this upload.")}
	}

	var sections []dto.Section

	catRanked := rankCounts(categoryCounts)
	catLabels := make([]string, len(catRanked))
	catValues := make([]float64, len(catRanked))
	for i, r := range catRanked {
		catLabels[i] = displayName(r.Key)
		catValues[i] = float64(r.Count)
	}
	sections = append(sections, dto.ChartSection("Tags by Category", &dto.Chart{
		Type: dto.ChartBar, XLabel: "Category", YLabel: "Tags",
		Series: []dto.Series{{Name: "Tags", Labels: catLabels, Values: catValues}},
	}))

	tagRanked := rankCounts(tagCounts)
	if len(tagRanked) > 20 {
		tagRanked = tagRanked[:20]
	}
	tagTable := &dto.TableData{Columns: []string{"Tag", "Count"}}
	for _, r := range tagRanked {
		tagTable.Rows = append(tagTable.Rows, []string{r.Key, formatInt(r.Count)})
	}
	sections = append(sections, dto.TableSection("Most Common Tags", tagTable))

	if len(roleCounts) > 0 {
		ranked := rankCounts(roleCounts)
		labels := make([]string, len(ranked))
		values := make([]float64, len(ranked))
		for i, r := range ranked {
			labels[i] = displayName(r.Key)
			values[i] = float64(r.Count)
		}
		sections = append(sections, dto.ChartSection("Roles", &dto.Chart{
			Type:   dto.ChartPie,
			Series: []dto.Series{{Name: "Roles", Labels: labels, Values: values}},
		}))
	}

	return sections
}

func generalSections(snap *snapshot.Snapshot, search string) []dto.Section {
	if len(snap.General) == 0 {
		return []dto.Section{dto.NoticeSection("info", "No general feedback submissions in this upload.")}
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	matched := make([]merge.GeneralFeedbackRecord, 0, len(snap.General))
	for _, rec := range snap.General {
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.Message), needle) &&
			!strings.Contains(strings.ToLower(rec.Category), needle) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].Timestamp, matched[j].Timestamp
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})

	table := &dto.TableData{Columns: []string{"Submitted", "Category", "Message"}}
	dayCounts := make(map[string]int)
	for _, rec := range matched {
		submitted := ""
		if !rec.Timestamp.IsZero() {
			submitted = rec.Timestamp.UTC().Format(time.RFC3339)
			dayCounts[stats.DayKey(rec.Timestamp)]++
		}
		table.Rows = append(table.Rows, []string{submitted, rec.Category, rec.Message})
	}

	sections := []dto.Section{dto.TableSection("Submissions", table)}
	if len(dayCounts) > 0 {
		days := sortedKeys(dayCounts)
		values := make([]float64, len(days))
		for i, day := range days {
			values[i] = float64(dayCounts[day])
		}
		sections = append(sections, dto.ChartSection("Submissions per Day", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Day", YLabel: "Submissions",
			Series: []dto.Series{{Name: "Submissions", Labels: days, Values: values}},
		}))
	}
	return sections
}
