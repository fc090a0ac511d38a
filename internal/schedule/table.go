// Package schedule derives the day's generation jobs from the calendar.
// It is a pure lookup: a 4-week repeating cycle keyed by (week index mod 4,
// weekday), plus a caller-supplied topic cursor that is advanced and
// returned rather than hidden in process state.
package schedule

import (
	"time"

	"eazyhealth/internal/domain"
)

// analysisLevels is the Monday data-analysis rotation across the 4-week
// cycle. These values are operational policy; they are a literal table,
// not a formula.
var analysisLevels = [4]domain.ReadingLevel{
	domain.LevelGrade6,
	domain.LevelGrade8,
	domain.LevelHighSchool,
	domain.LevelCollege,
}

// complementaryLevels maps Monday's data-analysis tier to Thursday's, so
// the two weekly analysis posts never land on the same tier.
var complementaryLevels = map[domain.ReadingLevel]domain.ReadingLevel{
	domain.LevelGrade6:     domain.LevelHighSchool,
	domain.LevelGrade8:     domain.LevelCollege,
	domain.LevelHighSchool: domain.LevelGrade6,
	domain.LevelCollege:    domain.LevelGrade8,
}

// articleLevelByWeekday fixes the article-summary tier per weekday.
var articleLevelByWeekday = map[time.Weekday]domain.ReadingLevel{
	time.Monday:    domain.LevelGrade6,
	time.Tuesday:   domain.LevelGrade8,
	time.Wednesday: domain.LevelHighSchool,
	time.Thursday:  domain.LevelCollege,
	time.Friday:    domain.LevelGrade3,
}

// JobsForDate returns the jobs to run on the given date and the advanced
// topic cursor. Weekends emit no jobs and leave the cursor untouched.
func JobsForDate(date time.Time, cursor int) ([]domain.ScheduleJob, int) {
	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return nil, cursor
	}

	var jobs []domain.ScheduleJob

	if weekday == time.Monday || weekday == time.Thursday {
		jobs = append(jobs, domain.ScheduleJob{
			ContentType:  domain.SourceDataAnalysis,
			ReadingLevel: analysisLevel(date),
		})
	}

	jobs = append(jobs, domain.ScheduleJob{
		ContentType:  domain.SourceArticleSummary,
		ReadingLevel: articleLevelByWeekday[weekday],
		Topic:        Topics[normalizeCursor(cursor)],
	})

	return jobs, normalizeCursor(cursor + 1)
}

// analysisLevel resolves the data-analysis tier for a Monday or Thursday.
func analysisLevel(date time.Time) domain.ReadingLevel {
	_, week := date.ISOWeek()
	monday := analysisLevels[week%4]
	if date.Weekday() == time.Thursday {
		return complementaryLevels[monday]
	}
	return monday
}

func normalizeCursor(cursor int) int {
	n := len(Topics)
	cursor %= n
	if cursor < 0 {
		cursor += n
	}
	return cursor
}
