package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/aninayuwoki/cobranza/models"
)

// Status colors consumed by the front end.
const (
	ColorAlert   = "#e74c3c"
	ColorSuccess = "#27ae60"
	ColorNeutral = "#7f8c8d"
)

// ComputeStatus classifies every billing week of a student's enrollment as
// paid or delinquent and returns the aggregate status. It is pure: no I/O,
// no mutation of the student, and the evaluation date is passed in so
// callers and tests control the clock.
//
// Billing weeks are consecutive 7-day spans, the first starting exactly at
// the start date. A week counts as elapsed once its start is on or before
// asOf; partial weeks are not pro-rated. A week is paid when the payments
// dated inside its span sum to at least the weekly amount. Payments are
// never carried between weeks.
func ComputeStatus(s models.Student, asOf time.Time) models.PaymentStatus {
	today := dateOnly(asOf)

	if s.StartDate == "" {
		return degenerateStatus(s, "start date not defined", ColorNeutral, true)
	}
	start, err := time.Parse(models.DateLayout, s.StartDate)
	if err != nil {
		return degenerateStatus(s, "invalid start date format", ColorAlert, false)
	}
	if !s.WeeklyAmount.Valid || s.WeeklyAmount.Value <= 0 {
		return degenerateStatus(s, "invalid or non-positive weekly amount", ColorAlert, false)
	}
	weekly := s.WeeklyAmount.Value
	if start.After(today) {
		return degenerateStatus(s, "not yet started (current)", ColorSuccess, true)
	}

	weeksPaid, weeksDelinquent := 0, 0
	for ws := start; !ws.After(today); ws = ws.AddDate(0, 0, 7) {
		we := ws.AddDate(0, 0, 6)
		covered := 0.0
		for _, p := range s.PaymentHistory {
			d, ok := validPaymentDate(p)
			if !ok {
				continue
			}
			if !d.Before(ws) && !d.After(we) {
				covered += p.Amount.Value
			}
		}
		if covered >= weekly {
			weeksPaid++
		} else {
			weeksDelinquent++
		}
	}

	weeksElapsed := weeksPaid + weeksDelinquent
	expected := Round2(float64(weeksElapsed) * weekly)

	status := models.PaymentStatus{
		WeeksElapsed:     weeksElapsed,
		WeeksPaid:        weeksPaid,
		WeeksDelinquent:  weeksDelinquent,
		SemanasFaltantes: weeksDelinquent,
		TotalPaidActual:  Round2(s.TotalPaid.Value),
		WeeklyAmount:     weekly,
		ExpectedAmount:   expected,
		Balance:          Round2(s.TotalPaid.Value - expected),
		IsCurrent:        weeksDelinquent == 0,
	}
	if weeksDelinquent > 0 {
		status.StatusText = fmt.Sprintf("behind %d week(s)", weeksDelinquent)
		status.StatusColor = ColorAlert
	} else {
		status.StatusText = "current"
		status.StatusColor = ColorSuccess
	}
	return status
}

// degenerateStatus is the zero-week status returned when the record cannot
// be billed at all (no start date, bad formats, future enrollment).
func degenerateStatus(s models.Student, text, color string, current bool) models.PaymentStatus {
	return models.PaymentStatus{
		TotalPaidActual: Round2(s.TotalPaid.Value),
		WeeklyAmount:    s.WeeklyAmount.Value,
		Balance:         Round2(s.TotalPaid.Value),
		IsCurrent:       current,
		StatusText:      text,
		StatusColor:     color,
	}
}

// validPaymentDate reports whether a history entry is well formed enough to
// count toward a week: parseable date, numeric positive amount. Anything
// else is skipped, never an error.
func validPaymentDate(p models.Payment) (time.Time, bool) {
	if p.Date == "" || !p.Amount.Valid || p.Amount.Value <= 0 {
		return time.Time{}, false
	}
	d, err := time.Parse(models.DateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Round2 rounds a money amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
