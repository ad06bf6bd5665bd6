package calculation

import (
	"math"
	"time"

	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// segmentVisibleYears is the shortest segment a timeline shows
const segmentVisibleYears = 0.1

// SegmentKind identifies a phase of the timeline
type SegmentKind string

const (
	SegmentWorking SegmentKind = "working"
	SegmentSelfPay SegmentKind = "self_pay"
	SegmentWaiting SegmentKind = "waiting"
)

// TimelineSegment is one visible phase between now and the claim date
type TimelineSegment struct {
	Kind    SegmentKind `json:"kind"`
	Years   float64     `json:"years"`
	Percent float64     `json:"percent"`
}

// Timeline places the quit, stop-pay and claim events on the calendar
type Timeline struct {
	StartYear   int               `json:"start_year"`
	StartAge    int               `json:"start_age"`
	QuitYear    int               `json:"quit_year"`
	StopPayYear *int              `json:"stop_pay_year,omitempty"`
	ClaimYear   int               `json:"claim_year"`
	TotalYears  float64           `json:"total_years"`
	Segments    []TimelineSegment `json:"segments"`
}

// BuildTimeline lays out a projection result on the calendar starting at now.
// It reports false when there is nothing left to show, i.e. the claim date
// is already reached.
func BuildTimeline(result *domain.RetirementResult, now time.Time) (Timeline, bool) {
	waiting := result.YearsWaiting()
	total := result.YearsWorking + result.YearsFlexPay + waiting
	if total <= 0 {
		return Timeline{}, false
	}

	nowYear := now.Year()
	tl := Timeline{
		StartYear:  nowYear,
		StartAge:   result.AgeNow,
		QuitYear:   nowYear + int(roundHalfUp(result.QuitAge-float64(result.AgeNow))),
		ClaimYear:  result.RetireYear,
		TotalYears: total,
	}
	if stopAge, ok := result.StopPayAge(); ok {
		year := nowYear + int(roundHalfUp(stopAge-float64(result.AgeNow)))
		tl.StopPayYear = &year
	}

	phases := []struct {
		kind  SegmentKind
		years float64
	}{
		{SegmentWorking, result.YearsWorking},
		{SegmentSelfPay, result.YearsFlexPay},
		{SegmentWaiting, waiting},
	}
	for _, p := range phases {
		if p.years <= segmentVisibleYears {
			continue
		}
		tl.Segments = append(tl.Segments, TimelineSegment{
			Kind:    p.kind,
			Years:   p.years,
			Percent: p.years / total * 100,
		})
	}
	return tl, true
}

// roundHalfUp rounds to the nearest integer with halves going up
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
