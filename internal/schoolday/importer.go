package schoolday

import (
	"regexp"
	"strings"
	"time"

	"github.com/tay1orr/notebook-loan-api/internal/models"
)

// Import formats accepted by the calendar admin endpoint.
const (
	FormatICS = "ics"
	FormatCSV = "csv"
)

// Summary substrings that mark an event as a school closure.
var closureKeywords = []string{"휴업", "휴일", "방학"}

var icsDatePattern = regexp.MustCompile(`(\d{8})`)

// ParseICS scans a simplified ICS event stream line by line. It recognises
// DTSTART lines carrying an 8-digit YYYYMMDD token, SUMMARY lines, and
// END:VEVENT terminators. Events whose summary contains a closure keyword
// become non-school days; everything else is a school day. Incomplete events
// are dropped and counted in the report. This is deliberately not a
// conformant ICS parser: unrecognised lines, multi-day ranges, recurrence
// rules and line folding are all ignored.
func ParseICS(content string) ([]models.SchoolDayEntry, models.ImportReport) {
	report := models.ImportReport{Format: FormatICS}
	entries := make([]models.SchoolDayEntry, 0)

	var date, summary string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "DTSTART"):
			if match := icsDatePattern.FindString(line); match != "" {
				if parsed, err := time.Parse("20060102", match); err == nil {
					date = parsed.Format(DateKey)
				}
			}
		case strings.HasPrefix(line, "SUMMARY"):
			if _, value, found := strings.Cut(line, ":"); found {
				summary = strings.TrimSpace(value)
			}
		case strings.HasPrefix(line, "END:VEVENT"):
			if date == "" {
				report.Skipped++
			} else {
				entries = append(entries, models.SchoolDayEntry{
					Date:        date,
					IsSchoolDay: !isClosureSummary(summary),
					Description: summary,
				})
				report.Parsed++
			}
			date, summary = "", ""
		}
	}

	return entries, report
}

// ParseCSV parses `date,is_school_day,description` rows. The first line is
// assumed to be a header and skipped. Truthy flags are a case-insensitive
// "true" or the literal "1". Rows missing the date or the flag are dropped
// and counted. There is no quoting support; a description containing a comma
// survives only because the description is the final column.
func ParseCSV(content string) ([]models.SchoolDayEntry, models.ImportReport) {
	report := models.ImportReport{Format: FormatCSV}
	entries := make([]models.SchoolDayEntry, 0)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, ",", 3)
		if len(parts) < 2 {
			report.Skipped++
			continue
		}
		date := strings.TrimSpace(parts[0])
		flag := strings.TrimSpace(parts[1])
		if date == "" || flag == "" {
			report.Skipped++
			continue
		}

		description := ""
		if len(parts) == 3 {
			description = strings.TrimSpace(parts[2])
		}

		entries = append(entries, models.SchoolDayEntry{
			Date:        date,
			IsSchoolDay: flag == "1" || strings.EqualFold(flag, "true"),
			Description: description,
		})
		report.Parsed++
	}

	return entries, report
}

func isClosureSummary(summary string) bool {
	for _, keyword := range closureKeywords {
		if strings.Contains(summary, keyword) {
			return true
		}
	}
	return false
}
