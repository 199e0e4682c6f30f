package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/schoolday"
)

// calendar-lint parses a school calendar file offline, prints the import
// report, and previews the next school days so an admin can sanity-check an
// upload before pushing it to the API.
func main() {
	var (
		format  string
		from    string
		preview int
	)

	flag.StringVar(&format, "format", "", "File format: ics or csv (inferred from extension when omitted)")
	flag.StringVar(&from, "from", "", "Preview start date (YYYY-MM-DD), defaults to today")
	flag.IntVar(&preview, "preview", 5, "Number of upcoming school days to preview")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: calendar-lint [flags] <calendar-file>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	content := string(raw)

	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ics":
			format = schoolday.FormatICS
		case ".csv":
			format = schoolday.FormatCSV
		default:
			log.Fatalf("cannot infer format from %s, pass -format", path)
		}
	}

	var (
		entries []models.SchoolDayEntry
		report  models.ImportReport
	)
	switch format {
	case schoolday.FormatICS:
		entries, report = schoolday.ParseICS(content)
	case schoolday.FormatCSV:
		entries, report = schoolday.ParseCSV(content)
	default:
		log.Fatalf("unsupported format %q, expected ics or csv", format)
	}

	fmt.Printf("Format:  %s\n", report.Format)
	fmt.Printf("Parsed:  %d\n", report.Parsed)
	fmt.Printf("Skipped: %d\n", report.Skipped)

	closures := 0
	for _, entry := range entries {
		if !entry.IsSchoolDay {
			closures++
		}
	}
	fmt.Printf("Closures: %d, explicit school days: %d\n", closures, len(entries)-closures)

	calendar := schoolday.NewCalendar()
	calendar.Load(entries)
	calc := schoolday.NewCalculator(calendar, schoolday.CalculatorOptions{})

	start := time.Now().In(schoolday.DefaultLocation)
	if from != "" {
		parsed, err := time.ParseInLocation(schoolday.DateKey, from, schoolday.DefaultLocation)
		if err != nil {
			log.Fatalf("invalid -from date %q, expected YYYY-MM-DD", from)
		}
		start = parsed
	}

	fmt.Printf("\nNext %d school days from %s:\n", preview, start.Format(schoolday.DateKey))
	cursor := start
	for i := 0; i < preview; i++ {
		next := calc.NextSchoolDay(cursor)
		fmt.Printf("  %s (%s)\n", next.Format(schoolday.DateKey), calc.FormatDate(next))
		cursor = next
	}
}
