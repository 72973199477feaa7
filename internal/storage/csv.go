package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ImportResult summarizes a CSV load.
type ImportResult struct {
	Loaded  int
	Skipped int
	Errors  []string
}

// ReadCSV parses customers from r. The header row names columns; only "name" is
// required. Rows without an id get the next free sequential id. Rows that repeat
// an id are skipped.
func ReadCSV(r io.Reader, loc *time.Location) ([]Record, ImportResult, error) {
	result := ImportResult{}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, result, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			index[key] = i
		}
	}
	nameIdx, ok := index["name"]
	if !ok {
		return nil, result, fmt.Errorf("csv missing 'name' column")
	}
	if loc == nil {
		loc = time.Local
	}
	column := func(record []string, names ...string) string {
		for _, name := range names {
			if idx, ok := index[name]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
		}
		return ""
	}

	var records []Record
	seen := map[int64]struct{}{}
	var nextID int64 = 1
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		if nameIdx >= len(fields) || strings.TrimSpace(fields[nameIdx]) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: customer name required", row))
			result.Skipped++
			continue
		}
		rec := Record{
			Name:      strings.TrimSpace(fields[nameIdx]),
			Phone:     column(fields, "phone"),
			Email:     column(fields, "email"),
			Score:     column(fields, "score"),
			AddedBy:   column(fields, "added_by", "addedby", "creator"),
			AvatarRef: column(fields, "avatar", "avatar_ref"),
		}
		if stamp := column(fields, "last_message_at", "lastmessageat"); stamp != "" {
			rec.LastMessageAt = normalizeStamp(stamp, loc)
		}
		if raw := column(fields, "id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid id %q", row, raw))
				result.Skipped++
				continue
			}
			rec.ID = id
		} else {
			for {
				if _, taken := seen[nextID]; !taken {
					break
				}
				nextID++
			}
			rec.ID = nextID
		}
		if _, dup := seen[rec.ID]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate id %d", row, rec.ID))
			result.Skipped++
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
		result.Loaded++
	}
	return records, result, nil
}

// normalizeStamp rewrites machine timestamps into the display label layout and
// leaves anything unrecognized untouched.
func normalizeStamp(value string, loc *time.Location) string {
	if t, ok := parseImportTime(value, loc); ok {
		return t.Format(LastMessageLayout)
	}
	return value
}

func parseImportTime(value string, loc *time.Location) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}
	if t, err := time.Parse(time.RFC1123, value); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}
