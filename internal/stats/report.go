// Package stats summarizes and formats password history.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/pwgen/internal/history"
	"github.com/verte-zerg/pwgen/internal/model"
	"github.com/verte-zerg/pwgen/internal/strength"
)

// Summary aggregates a history log.
type Summary struct {
	Count         int
	AvgLength     float64
	AvgScore      float64
	ByLabel       map[string]int
	ClassCoverage map[model.CharacterClass]int
	Newest        time.Time
	Oldest        time.Time
}

// Summarize computes aggregate figures for log.
func Summarize(log history.Log) Summary {
	s := Summary{
		ByLabel:       map[string]int{},
		ClassCoverage: map[model.CharacterClass]int{},
	}
	if len(log) == 0 {
		return s
	}
	totalLen := 0
	totalScore := 0
	for _, entry := range log {
		score := strength.Score(entry.Value)
		totalScore += score
		totalLen += len([]rune(entry.Value))
		s.ByLabel[strength.Label(score)]++
		for _, class := range model.AllClasses {
			if strings.ContainsAny(entry.Value, class.Alphabet()) {
				s.ClassCoverage[class]++
			}
		}
	}
	s.Count = len(log)
	s.AvgLength = float64(totalLen) / float64(len(log))
	s.AvgScore = float64(totalScore) / float64(len(log))
	s.Newest = log[0].CreatedAt
	s.Oldest = log[len(log)-1].CreatedAt
	return s
}

// FormatHistory renders log as an aligned table, newest first.
func FormatHistory(log history.Log, now time.Time) []string {
	headers := []string{"#", "Password", "Strength", "Created", "Age"}
	rows := make([][]string, 0, len(log))
	for i, entry := range log {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			entry.Value,
			strength.Label(strength.Score(entry.Value)),
			entry.CreatedAt.Local().Format(time.RFC3339),
			humanize.RelTime(entry.CreatedAt, now, "ago", "from now"),
		})
	}
	return formatTable(headers, rows, map[int]bool{0: true})
}

// FormatSummary renders a one-line digest of s.
func FormatSummary(s Summary) string {
	if s.Count == 0 {
		return "History is empty"
	}
	noun := "entries"
	if s.Count == 1 {
		noun = "entry"
	}
	parts := []string{
		fmt.Sprintf("%d %s", s.Count, noun),
		fmt.Sprintf("avg length %.1f", s.AvgLength),
		fmt.Sprintf("avg score %.1f/%d", s.AvgScore, strength.MaxScore),
	}
	for _, class := range model.AllClasses {
		if n := s.ClassCoverage[class]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", class, n))
		}
	}
	return strings.Join(parts, " · ")
}
