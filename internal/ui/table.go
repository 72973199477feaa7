package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"crmtable/internal/pipeline"
	"crmtable/internal/storage"
	"crmtable/internal/theme"
)

type column struct {
	title string
	field storage.Field
}

// columns are rendered left to right; the checkbox column is not sortable.
var columns = []column{
	{title: "", field: storage.FieldNone},
	{title: "Customer", field: storage.FieldName},
	{title: "Score", field: storage.FieldScore},
	{title: "Email", field: storage.FieldEmail},
	{title: "Last message sent at", field: storage.FieldLastMessageAt},
	{title: "Added by", field: storage.FieldAddedBy},
}

const (
	checkboxWidth = 3
	scoreWidth    = 7
	lastMsgWidth  = 26
	addedByWidth  = 18
	columnGap     = 1
	minFlexWidth  = 40
)

type span struct {
	x, w int
}

// columnSpans lays columns out across width. Customer and email share the space
// left after the fixed columns.
func columnSpans(width int) []span {
	fixed := checkboxWidth + scoreWidth + lastMsgWidth + addedByWidth + columnGap*(len(columns)-1)
	flex := width - fixed
	if flex < minFlexWidth {
		flex = minFlexWidth
	}
	customer := flex * 3 / 5
	widths := []int{checkboxWidth, customer, scoreWidth, flex - customer, lastMsgWidth, addedByWidth}
	spans := make([]span, len(widths))
	x := 0
	for i, w := range widths {
		spans[i] = span{x: x, w: w}
		x += w + columnGap
	}
	return spans
}

// columnAt returns the column under x, or -1 for gaps and the margin.
func columnAt(spans []span, x int) int {
	for i, s := range spans {
		if x >= s.x && x < s.x+s.w {
			return i
		}
	}
	return -1
}

func sortableColumn(i int) bool {
	return i > 0 && i < len(columns) && columns[i].field != storage.FieldNone
}

func columnForField(f storage.Field) int {
	for i, c := range columns {
		if c.field == f && f != storage.FieldNone {
			return i
		}
	}
	return -1
}

func cell(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func sortMark(cfg pipeline.SortConfig, f storage.Field) string {
	if !cfg.Active() || cfg.Key != f {
		return ""
	}
	if cfg.Direction == pipeline.Ascending {
		return " ▲"
	}
	return " ▼"
}

func renderHeader(t theme.Theme, spans []span, cfg pipeline.SortConfig, focused int) string {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", columnGap))
		}
		title := c.title
		if i == 0 {
			title = "[ ]"
		}
		mark := sortMark(cfg, c.field)
		text := cell(title, spans[i].w-runewidth.StringWidth(mark))
		style := t.Header
		if i == focused {
			style = t.HeaderFocus
		}
		b.WriteString(style.Render(text))
		if mark != "" {
			b.WriteString(t.SortMark.Render(mark))
		}
	}
	return b.String()
}

func renderRow(t theme.Theme, spans []span, r storage.Record, selected bool) string {
	style := t.Row
	if selected {
		style = t.RowSelected
	}
	gap := strings.Repeat(" ", columnGap)
	badge := " " + initials(r.Name) + " "
	customerText := r.Name
	if r.Phone != "" {
		customerText += " · " + r.Phone
	}
	customerW := spans[1].w - runewidth.StringWidth(badge) - 1
	if customerW < 1 {
		customerW = 1
	}

	var b strings.Builder
	b.WriteString(style.Render(cell("[ ]", spans[0].w) + gap))
	b.WriteString(t.Avatar.Render(badge))
	b.WriteString(style.Render(" " + cell(customerText, customerW) + gap))
	b.WriteString(style.Render(cell(r.Score, spans[2].w) + gap))
	b.WriteString(style.Render(cell(r.Email, spans[3].w) + gap))
	b.WriteString(style.Render(cell(r.LastMessageAt, spans[4].w) + gap))
	b.WriteString(style.Render(cell(r.AddedBy, spans[5].w)))
	return b.String()
}

// initials builds the avatar badge text from the first two words of name.
func initials(name string) string {
	fields := strings.Fields(name)
	var out []rune
	for _, f := range fields {
		if len(out) == 2 {
			break
		}
		for _, r := range f {
			out = append(out, r)
			break
		}
	}
	if len(out) == 0 {
		return "??"
	}
	if len(out) == 1 {
		out = append(out, ' ')
	}
	return strings.ToUpper(string(out))
}

func tableWidth(spans []span) int {
	last := spans[len(spans)-1]
	return last.x + last.w
}
