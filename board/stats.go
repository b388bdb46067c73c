/*
stats.go - Derived safety KPIs

PURPOSE:
  Pure derivation of the dashboard's headline numbers from the calendar
  grid, the incident log, and the annual man-hours figure:

    absentCase    days recorded absent (lost time)
    nonAbsentCase days recorded non-absent (recordable, no lost time)
    firstAidCase  incidents of type first aid
    fireCase      incidents of type fire
    IFR           absent * 1,000,000 / man-hours, 2 decimals
    ISR           (absent + non-absent) * 1,000,000 / man-hours, 2 decimals

DIVISION SAFETY:
  The man-hours denominator is floor-clamped to 1. That makes a zero or
  unset man-hours figure produce inflated rates instead of a crash; an
  accepted approximation, not a bug to fix silently.

PRECISION:
  The ratios are computed and rounded with decimal arithmetic so that
  "round to 2 places" means exactly that, not float formatting.
*/
package board

import "github.com/shopspring/decimal"

// perMillion is the conventional KPI scale: cases per million man-hours.
var perMillion = decimal.NewFromInt(1_000_000)

// DefaultManHoursYear is used when nothing has been configured or
// persisted. Matches the seed value the kiosk shipped with.
const DefaultManHoursYear = 200000

// Statistics is the derived KPI set, recomputed on every state change.
type Statistics struct {
	AbsentCase    int     `json:"absentCase"`
	NonAbsentCase int     `json:"nonAbsentCase"`
	FirstAidCase  int     `json:"firstAidCase"`
	FireCase      int     `json:"fireCase"`
	IFR           float64 `json:"ifr"`
	ISR           float64 `json:"isr"`
}

// ComputeStatistics derives the KPI set. Missing or empty months simply
// contribute zero days.
func ComputeStatistics(months []MonthlyData, incidents []Incident, manHoursYear int) Statistics {
	var s Statistics
	for _, m := range months {
		for _, d := range m.Days {
			switch d.Status {
			case StatusAbsent:
				s.AbsentCase++
			case StatusNonAbsent:
				s.NonAbsentCase++
			}
		}
	}
	for _, in := range incidents {
		switch in.Type {
		case IncidentFirstAid:
			s.FirstAidCase++
		case IncidentFire:
			s.FireCase++
		}
	}
	s.IFR = ratePerMillion(s.AbsentCase, manHoursYear)
	s.ISR = ratePerMillion(s.AbsentCase+s.NonAbsentCase, manHoursYear)
	return s
}

func ratePerMillion(cases, manHours int) float64 {
	if manHours < 1 {
		manHours = 1
	}
	rate := decimal.NewFromInt(int64(cases)).
		Mul(perMillion).
		Div(decimal.NewFromInt(int64(manHours))).
		Round(2)
	f, _ := rate.Float64()
	return f
}
