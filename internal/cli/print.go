package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crmtable/internal/browse"
)

var printer = message.NewPrinter(language.English)

// tabwriterPadding is the minimum padding between columns in plain output.
const tabwriterPadding = 2

// printTable writes the materialized rows of ctrl followed by a summary line.
func printTable(w io.Writer, ctrl *browse.Controller) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tPHONE\tSCORE\tEMAIL\tLAST MESSAGE SENT AT\tADDED BY")
	rows := ctrl.Rows()
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Phone, r.Score, r.Email, r.LastMessageAt, r.AddedBy)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	_, err := printer.Fprintf(w, "showing %d of %d matches (%d records, sort %s)\n",
		len(rows), ctrl.Matches(), ctrl.Total(), ctrl.Sort())
	return err
}
