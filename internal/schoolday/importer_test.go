package schoolday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICSClosureEvent(t *testing.T) {
	content := "BEGIN:VCALENDAR\n" +
		"BEGIN:VEVENT\n" +
		"DTSTART;VALUE=DATE:20240916\n" +
		"SUMMARY:휴업일\n" +
		"END:VEVENT\n" +
		"END:VCALENDAR\n"

	entries, report := ParseICS(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-16", entries[0].Date)
	assert.False(t, entries[0].IsSchoolDay)
	assert.Equal(t, "휴업일", entries[0].Description)
	assert.Equal(t, 1, report.Parsed)
	assert.Equal(t, 0, report.Skipped)
}

func TestParseICSSchoolDayEvent(t *testing.T) {
	content := "BEGIN:VEVENT\n" +
		"DTSTART:20240917T090000\n" +
		"SUMMARY:학부모 상담주간\n" +
		"END:VEVENT\n"

	entries, report := ParseICS(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-17", entries[0].Date)
	assert.True(t, entries[0].IsSchoolDay)
	assert.Equal(t, 1, report.Parsed)
}

func TestParseICSKeywordVariants(t *testing.T) {
	content := "BEGIN:VEVENT\nDTSTART:20240718\nSUMMARY:여름방학 시작\nEND:VEVENT\n" +
		"BEGIN:VEVENT\nDTSTART:20241003\nSUMMARY:개천절 휴일\nEND:VEVENT\n"

	entries, _ := ParseICS(content)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsSchoolDay)
	assert.False(t, entries[1].IsSchoolDay)
}

func TestParseICSIncompleteEventSkipped(t *testing.T) {
	content := "BEGIN:VEVENT\n" +
		"SUMMARY:날짜 없는 일정\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" +
		"DTSTART:20240920\n" +
		"END:VEVENT\n"

	entries, report := ParseICS(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-20", entries[0].Date)
	assert.Equal(t, 1, report.Parsed)
	assert.Equal(t, 1, report.Skipped)
}

func TestParseICSOrderPreserved(t *testing.T) {
	content := "BEGIN:VEVENT\nDTSTART:20240920\nSUMMARY:b\nEND:VEVENT\n" +
		"BEGIN:VEVENT\nDTSTART:20240910\nSUMMARY:a\nEND:VEVENT\n"

	entries, _ := ParseICS(content)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-09-20", entries[0].Date)
	assert.Equal(t, "2024-09-10", entries[1].Date)
}

func TestParseCSVRoundTrip(t *testing.T) {
	content := "date,is_school_day,description\n2024-09-16,false,전교휴업\n"

	entries, report := ParseCSV(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-16", entries[0].Date)
	assert.False(t, entries[0].IsSchoolDay)
	assert.Equal(t, "전교휴업", entries[0].Description)
	assert.Equal(t, 1, report.Parsed)
}

func TestParseCSVTruthyValues(t *testing.T) {
	content := "date,is_school_day,description\n" +
		"2024-09-16,1,\n" +
		"2024-09-17,TRUE,\n" +
		"2024-09-18,yes,\n" +
		"2024-09-19,0,\n"

	entries, _ := ParseCSV(content)
	require.Len(t, entries, 4)
	assert.True(t, entries[0].IsSchoolDay)
	assert.True(t, entries[1].IsSchoolDay)
	assert.False(t, entries[2].IsSchoolDay, "only true/1 are truthy")
	assert.False(t, entries[3].IsSchoolDay)
}

func TestParseCSVSkipsBadRows(t *testing.T) {
	content := "date,is_school_day,description\n" +
		"\n" +
		"2024-09-16\n" +
		",true,desc\n" +
		"2024-09-17,,desc\n" +
		"2024-09-18,false,ok\n"

	entries, report := ParseCSV(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-18", entries[0].Date)
	assert.Equal(t, 1, report.Parsed)
	assert.Equal(t, 3, report.Skipped)
}

func TestParseCSVWindowsLineEndings(t *testing.T) {
	content := "date,is_school_day,description\r\n2024-09-16,true,체험학습\r\n"

	entries, _ := ParseCSV(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-09-16", entries[0].Date)
	assert.Equal(t, "체험학습", entries[0].Description)
}
