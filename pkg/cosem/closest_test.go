package cosem

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClosestFutureDate(t *testing.T) {
	lastDay := Date{
		Year:       YearNotSpecified,
		Month:      MonthNotSpecified,
		DayOfMonth: DayLast,
		DayOfWeek:  DayOfWeekNotSpecified,
	}

	tests := []struct {
		name   string
		date   Date
		from   time.Time
		want   time.Time
		wantOK bool
	}{
		{
			name:   "last day of leap february",
			date:   lastDay,
			from:   day(2024, time.February, 10),
			want:   day(2024, time.February, 29),
			wantOK: true,
		},
		{
			name:   "last day of common february",
			date:   lastDay,
			from:   day(2023, time.February, 10),
			want:   day(2023, time.February, 28),
			wantOK: true,
		},
		{
			name:   "query day already matches",
			date:   lastDay,
			from:   day(2023, time.April, 30),
			want:   day(2023, time.April, 30),
			wantOK: true,
		},
		{
			name: "second last day",
			date: Date{
				Year: YearNotSpecified, Month: MonthNotSpecified,
				DayOfMonth: DaySecondLast, DayOfWeek: DayOfWeekNotSpecified,
			},
			from:   day(2023, time.April, 30),
			want:   day(2023, time.May, 30),
			wantOK: true,
		},
		{
			name:   "any date is the query day",
			date:   AnyDate,
			from:   time.Date(2025, time.July, 4, 13, 45, 0, 0, time.UTC),
			want:   day(2025, time.July, 4),
			wantOK: true,
		},
		{
			name: "fixed month and day rolls to next year",
			date: Date{
				Year: YearNotSpecified, Month: 1, DayOfMonth: 15, DayOfWeek: DayOfWeekNotSpecified,
			},
			from:   day(2024, time.March, 1),
			want:   day(2025, time.January, 15),
			wantOK: true,
		},
		{
			name: "day 31 skips short months",
			date: Date{
				Year: YearNotSpecified, Month: MonthNotSpecified, DayOfMonth: 31, DayOfWeek: DayOfWeekNotSpecified,
			},
			from:   day(2024, time.April, 2),
			want:   day(2024, time.May, 31),
			wantOK: true,
		},
		{
			name: "next monday",
			date: Date{
				Year: YearNotSpecified, Month: MonthNotSpecified, DayOfMonth: DayNotSpecified, DayOfWeek: 1,
			},
			from:   day(2024, time.May, 1), // Wednesday
			want:   day(2024, time.May, 6),
			wantOK: true,
		},
		{
			name: "last day that is a sunday",
			date: Date{
				Year: YearNotSpecified, Month: MonthNotSpecified, DayOfMonth: DayLast, DayOfWeek: 7,
			},
			from:   day(2024, time.January, 1),
			want:   day(2024, time.March, 31),
			wantOK: true,
		},
		{
			name: "february 29 in the next leap year",
			date: Date{
				Year: YearNotSpecified, Month: 2, DayOfMonth: 29, DayOfWeek: DayOfWeekNotSpecified,
			},
			from:   day(2025, time.March, 1),
			want:   day(2028, time.February, 29),
			wantOK: true,
		},
		{
			name: "fixed year in the past",
			date: Date{
				Year: 2020, Month: MonthNotSpecified, DayOfMonth: DayNotSpecified, DayOfWeek: DayOfWeekNotSpecified,
			},
			from: day(2024, time.January, 1),
		},
		{
			name: "february 29 in fixed common year",
			date: Date{
				Year: 2023, Month: 2, DayOfMonth: 29, DayOfWeek: DayOfWeekNotSpecified,
			},
			from: day(2023, time.January, 1),
		},
		{
			name: "fixed date earlier in the query year",
			date: Date{
				Year: 2024, Month: 1, DayOfMonth: 5, DayOfWeek: DayOfWeekNotSpecified,
			},
			from: day(2024, time.June, 1),
		},
		{
			name: "fixed future date",
			date: Date{
				Year: 2030, Month: 12, DayOfMonth: 24, DayOfWeek: DayOfWeekNotSpecified,
			},
			from:   day(2024, time.June, 1),
			want:   day(2030, time.December, 24),
			wantOK: true,
		},
		{
			name: "invalid month never matches",
			date: Date{
				Year: YearNotSpecified, Month: 13, DayOfMonth: 1, DayOfWeek: DayOfWeekNotSpecified,
			},
			from: day(2024, time.June, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.date.ClosestFutureDate(tt.from)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %v)", ok, tt.wantOK, got)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosestFutureDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	from := time.Date(2024, time.February, 10, 23, 30, 0, 0, loc)

	got, ok := Date{
		Year: YearNotSpecified, Month: MonthNotSpecified, DayOfMonth: DayLast, DayOfWeek: DayOfWeekNotSpecified,
	}.ClosestFutureDate(from)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}
	if got.Hour() != 0 || got.Day() != 29 {
		t.Errorf("got %v, want midnight of the 29th", got)
	}
}

func TestClosestPastDateUnimplemented(t *testing.T) {
	if _, ok := AnyDate.ClosestPastDate(day(2024, time.January, 1)); ok {
		t.Error("ClosestPastDate should report no match")
	}
}

func TestDateMatches(t *testing.T) {
	d := Date{Year: YearNotSpecified, Month: 2, DayOfMonth: DayLast, DayOfWeek: DayOfWeekNotSpecified}
	if !d.Matches(day(2024, time.February, 29)) {
		t.Error("2024-02-29 should match last day of february")
	}
	if d.Matches(day(2024, time.February, 28)) {
		t.Error("2024-02-28 should not match last day of february 2024")
	}
	if d.Matches(day(2024, time.March, 31)) {
		t.Error("march should not match")
	}
}
