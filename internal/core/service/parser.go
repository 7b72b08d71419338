package service

import (
	"strconv"
	"strings"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// reportField binds a case-sensitive line prefix to the MoodReport field it
// fills.
type reportField struct {
	prefix string
	set    func(r *domain.MoodReport, value string)
}

var moodReportFields = []reportField{
	{prefix: "Mood:", set: func(r *domain.MoodReport, v string) { r.Mood = &v }},
	{prefix: "Score:", set: func(r *domain.MoodReport, v string) {
		score := parseScore(v)
		r.Score = &score
	}},
	{prefix: "Behavior Analysis:", set: func(r *domain.MoodReport, v string) { r.Analysis = &v }},
	{prefix: "Mood Changer:", set: func(r *domain.MoodReport, v string) { r.MoodChanger = &v }},
}

// ParseMoodReport extracts the labelled lines of an emotion analysis. Lines
// without a known prefix are ignored and absent labels leave their field
// nil. When a label repeats, the last line wins.
func ParseMoodReport(text string) domain.MoodReport {
	var r domain.MoodReport
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		for _, f := range moodReportFields {
			if strings.HasPrefix(line, f.prefix) {
				f.set(&r, strings.TrimSpace(strings.TrimPrefix(line, f.prefix)))
				break
			}
		}
	}
	return r
}

// parseScore reads a leading integer ("8", "8/10", "-3 points"). Content
// without leading digits yields the NaN sentinel.
func parseScore(s string) domain.Score {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return domain.NaNScore()
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return domain.NaNScore()
	}
	return domain.Score(n)
}
