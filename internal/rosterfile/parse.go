// Package rosterfile reads the two-column "person,species" roster file.
package rosterfile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/teamdex/internal/domain"
)

const bom = "\ufeff"

// ParseRows reads roster lines from r. Blank lines and lines starting with '#'
// are ignored. Each remaining line is split on commas; only the first two
// fields are used and quoting is not supported. Lines with a missing person
// or species are logged and skipped. Returns domain.ErrNoRows when nothing usable remains.
func ParseRows(r io.Reader, log *slog.Logger) ([]domain.Row, error) {
	var rows []domain.Row

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, bom)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row, err := parseLine(line)
		if err != nil {
			log.Warn("skipping roster line",
				slog.Int("line", lineNo),
				slog.String("content", line),
				slog.String("error", err.Error()),
			)
			continue
		}
		row.Line = lineNo
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	if len(rows) == 0 {
		return nil, domain.ErrNoRows
	}
	return rows, nil
}

func parseLine(line string) (domain.Row, error) {
	fields := strings.Split(line, ",")

	var person, species string
	person = strings.TrimSpace(fields[0])
	if len(fields) > 1 {
		species = strings.TrimSpace(fields[1])
	}

	var errs []domain.FieldError
	if person == "" {
		errs = append(errs, domain.FieldError{Field: "person", Message: "required"})
	}
	if species == "" {
		errs = append(errs, domain.FieldError{Field: "species", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.Row{}, domain.NewValidationErrors(errs)
	}

	return domain.Row{Person: person, Species: species}, nil
}
