// Package results folds the submission log into the public tallies.
// It needs no answer key, so it is computable at any point of the
// event, and it only ever exposes display identity, never contact
// fields.
package results

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/identity"
	"github.com/phkadmin/superbowl/internal/store"
)

type Participant struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

type Point struct {
	Participant
	Value int `json:"value"`
}

type Bar struct {
	Option       string        `json:"option"`
	Count        int           `json:"count"`
	Participants []Participant `json:"participants"`
}

type QuestionSummary struct {
	ID   int             `json:"id"`
	Text string          `json:"text"`
	Kind catalog.Kind    `json:"type"`
	Cost decimal.Decimal `json:"cost"`

	// Numeric questions plot points on a scale.
	ScaleMax int     `json:"scaleMax,omitempty"`
	Points   []Point `json:"points,omitempty"`

	// Choice questions render one bar per option.
	Bars []Bar `json:"bars,omitempty"`
}

type Projection struct {
	Questions        []QuestionSummary `json:"questions"`
	TotalSubmissions int               `json:"totalSubmissions"`
}

// Project aggregates every submission per question.
func Project(questions []catalog.Question, subs []store.Submission) Projection {
	summaries := make([]QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summary := QuestionSummary{ID: q.ID, Text: q.Text, Kind: q.Kind, Cost: q.Cost}

		switch q.Kind {
		case catalog.KindNumeric:
			points := make([]Point, 0)
			highest := 0
			for _, sub := range subs {
				answer, ok := sub.Answers[q.ID]
				if !ok {
					continue
				}
				value, err := strconv.Atoi(answer)
				if err != nil {
					continue
				}
				if value > highest {
					highest = value
				}
				points = append(points, Point{Participant: participant(sub.FullName), Value: value})
			}
			summary.Points = points
			summary.ScaleMax = scaleMax(highest)

		case catalog.KindChoice:
			bars := make([]Bar, 0, len(q.Options))
			for _, opt := range q.Options {
				bar := Bar{Option: opt, Participants: []Participant{}}
				for _, sub := range subs {
					if sub.Answers[q.ID] == opt {
						bar.Participants = append(bar.Participants, participant(sub.FullName))
					}
				}
				bar.Count = len(bar.Participants)
				bars = append(bars, bar)
			}
			summary.Bars = bars
		}

		summaries = append(summaries, summary)
	}

	return Projection{Questions: summaries, TotalSubmissions: len(subs)}
}

func participant(name string) Participant {
	return Participant{
		Name:     name,
		Initials: identity.Initials(name),
		Color:    identity.Color(name),
	}
}

// scaleMax gives numeric charts ~5% headroom above the highest guess,
// with a floor so an empty chart still has an axis.
func scaleMax(highest int) int {
	scaled := int(math.Round(float64(highest) * 1.05))
	if scaled < 5 {
		return 5
	}
	return scaled
}
