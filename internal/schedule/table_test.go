package schedule

import (
	"testing"
	"time"

	"eazyhealth/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 6, 0, 0, 0, time.UTC)
}

func TestJobsForWeekend(t *testing.T) {
	t.Parallel()

	for _, day := range []time.Time{
		date(2026, time.August, 22), // Saturday
		date(2026, time.August, 23), // Sunday
	} {
		jobs, cursor := JobsForDate(day, 7)
		if len(jobs) != 0 {
			t.Fatalf("%s: expected no jobs, got %d", day.Weekday(), len(jobs))
		}
		if cursor != 7 {
			t.Fatalf("%s: cursor moved to %d on a weekend", day.Weekday(), cursor)
		}
	}
}

func TestJobsForMonday(t *testing.T) {
	t.Parallel()

	jobs, cursor := JobsForDate(date(2026, time.August, 24), 0)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	analysis := jobs[0]
	if analysis.ContentType != domain.SourceDataAnalysis {
		t.Fatalf("first job should be data analysis, got %s", analysis.ContentType)
	}
	if analysis.Topic != "" {
		t.Fatalf("data analysis job carries topic %q", analysis.Topic)
	}

	article := jobs[1]
	if article.ContentType != domain.SourceArticleSummary {
		t.Fatalf("second job should be article summary, got %s", article.ContentType)
	}
	if article.ReadingLevel != domain.LevelGrade6 {
		t.Fatalf("Monday article level should be grade6, got %s", article.ReadingLevel)
	}
	if article.Topic != Topics[0] {
		t.Fatalf("expected topic %q, got %q", Topics[0], article.Topic)
	}
	if cursor != 1 {
		t.Fatalf("cursor should advance to 1, got %d", cursor)
	}
}

func TestJobsForFriday(t *testing.T) {
	t.Parallel()

	jobs, _ := JobsForDate(date(2026, time.August, 28), 3)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].ContentType != domain.SourceArticleSummary {
		t.Fatalf("Friday should only emit article summaries, got %s", jobs[0].ContentType)
	}
	if jobs[0].ReadingLevel != domain.LevelGrade3 {
		t.Fatalf("Friday article level should be grade3, got %s", jobs[0].ReadingLevel)
	}
	if jobs[0].Topic != Topics[3] {
		t.Fatalf("expected topic %q, got %q", Topics[3], jobs[0].Topic)
	}
}

func TestArticleLevelPerWeekday(t *testing.T) {
	t.Parallel()

	want := map[time.Weekday]domain.ReadingLevel{
		time.Monday:    domain.LevelGrade6,
		time.Tuesday:   domain.LevelGrade8,
		time.Wednesday: domain.LevelHighSchool,
		time.Thursday:  domain.LevelCollege,
		time.Friday:    domain.LevelGrade3,
	}

	// 2026-08-24 is a Monday.
	for offset := 0; offset < 5; offset++ {
		day := date(2026, time.August, 24+offset)
		jobs, _ := JobsForDate(day, 0)
		article := jobs[len(jobs)-1]
		if article.ReadingLevel != want[day.Weekday()] {
			t.Fatalf("%s: article level %s, want %s",
				day.Weekday(), article.ReadingLevel, want[day.Weekday()])
		}
	}
}

func TestAnalysisRotationComplementary(t *testing.T) {
	t.Parallel()

	seenMonday := map[domain.ReadingLevel]bool{}

	// Four consecutive weeks starting Monday 2026-08-24.
	for week := 0; week < 4; week++ {
		monday := date(2026, time.August, 24+7*week)
		thursday := monday.AddDate(0, 0, 3)

		mondayJobs, _ := JobsForDate(monday, 0)
		thursdayJobs, _ := JobsForDate(thursday, 0)

		mondayLevel := mondayJobs[0].ReadingLevel
		thursdayLevel := thursdayJobs[0].ReadingLevel

		if mondayLevel == thursdayLevel {
			t.Fatalf("week %d: Monday and Thursday analysis share tier %s", week, mondayLevel)
		}
		if complementaryLevels[mondayLevel] != thursdayLevel {
			t.Fatalf("week %d: Thursday tier %s is not the documented complement of %s",
				week, thursdayLevel, mondayLevel)
		}
		if seenMonday[mondayLevel] {
			t.Fatalf("Monday tier %s repeated inside the 4-week cycle", mondayLevel)
		}
		seenMonday[mondayLevel] = true
	}

	if len(seenMonday) != 4 {
		t.Fatalf("expected 4 distinct Monday tiers across the cycle, got %d", len(seenMonday))
	}
}

func TestCursorWrapsAroundTopics(t *testing.T) {
	t.Parallel()

	last := len(Topics) - 1
	jobs, cursor := JobsForDate(date(2026, time.August, 25), last)
	if jobs[0].Topic != Topics[last] {
		t.Fatalf("expected last topic %q, got %q", Topics[last], jobs[0].Topic)
	}
	if cursor != 0 {
		t.Fatalf("cursor should wrap to 0, got %d", cursor)
	}
}
