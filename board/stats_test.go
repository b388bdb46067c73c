package board

import "testing"

func monthsWith(statuses map[int]DayStatus) []MonthlyData {
	c := NewCalendar(2026, 0)
	months := c.Months()
	for dayIdx, st := range statuses {
		months[0].Days[dayIdx].Status = st
	}
	return months
}

func TestComputeStatistics_RatesPerMillion(t *testing.T) {
	// GIVEN: 2 absent days, 1 non-absent day, exactly one million man-hours
	// WHEN: Deriving the KPI set
	// THEN: IFR = 2.00, ISR = 3.00 (cases per million man-hours)

	months := monthsWith(map[int]DayStatus{
		0: StatusAbsent,
		1: StatusAbsent,
		2: StatusNonAbsent,
		3: StatusNormal,
	})

	s := ComputeStatistics(months, nil, 1_000_000)
	if s.AbsentCase != 2 || s.NonAbsentCase != 1 {
		t.Fatalf("case counts wrong: %+v", s)
	}
	if s.IFR != 2.0 {
		t.Errorf("IFR = %v, want 2", s.IFR)
	}
	if s.ISR != 3.0 {
		t.Errorf("ISR = %v, want 3", s.ISR)
	}
}

func TestComputeStatistics_RoundsToTwoPlaces(t *testing.T) {
	// 1 case over 300,000 hours = 3.333... -> 3.33
	months := monthsWith(map[int]DayStatus{0: StatusAbsent})
	s := ComputeStatistics(months, nil, 300_000)
	if s.IFR != 3.33 {
		t.Errorf("IFR = %v, want 3.33", s.IFR)
	}
}

func TestComputeStatistics_ZeroManHoursClamped(t *testing.T) {
	// The denominator floors at 1: no division panic, just inflated rates.
	months := monthsWith(map[int]DayStatus{0: StatusAbsent})
	s := ComputeStatistics(months, nil, 0)
	if s.IFR != 1_000_000 {
		t.Errorf("IFR with zero man-hours = %v, want 1000000", s.IFR)
	}
}

func TestComputeStatistics_IncidentTypeCounts(t *testing.T) {
	incidents := []Incident{
		{ID: "1", Type: IncidentFirstAid},
		{ID: "2", Type: IncidentFirstAid},
		{ID: "3", Type: IncidentFire},
		{ID: "4", Type: IncidentNearMiss}, // counted in neither KPI
	}
	s := ComputeStatistics(nil, incidents, DefaultManHoursYear)
	if s.FirstAidCase != 2 {
		t.Errorf("FirstAidCase = %d, want 2", s.FirstAidCase)
	}
	if s.FireCase != 1 {
		t.Errorf("FireCase = %d, want 1", s.FireCase)
	}
}

func TestComputeStatistics_EmptyInputs(t *testing.T) {
	s := ComputeStatistics(nil, nil, DefaultManHoursYear)
	if s != (Statistics{}) {
		t.Errorf("empty inputs should derive all-zero statistics, got %+v", s)
	}
}
