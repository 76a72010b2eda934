package jobdiff

import (
	"fmt"
	"io"

	"jobwatch/lib/scrapers/applitrack"
	"jobwatch/lib/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteReport renders the human-readable change summary: bucket counts
// followed by one row per affected job.
func WriteReport(w io.Writer, res Result, current, previous snapshot.Collection) {
	fmt.Fprintln(w, "Job Changes Summary:")
	fmt.Fprintf(w, "  Added: %d jobs\n", len(res.Added))
	fmt.Fprintf(w, "  Removed: %d jobs\n", len(res.Removed))
	fmt.Fprintf(w, "  Changed: %d jobs\n", len(res.Changed))

	if res.Empty() {
		return
	}

	cur := indexByID(current)
	prev := indexByID(previous)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Change", "Job ID", "Title", "Location"})
	appendRows(t, "added", res.Added, cur)
	appendRows(t, "removed", res.Removed, prev)
	appendRows(t, "changed", res.Changed, cur)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func appendRows(t table.Writer, bucket string, ids []string, jobs map[string]applitrack.JobRecord) {
	for _, id := range ids {
		job := jobs[id]
		title := job.Title
		if title == "" {
			title = "No title"
		}
		location := job.Location
		if location == "" {
			location = "No location"
		}
		t.AppendRow(table.Row{bucket, id, title, location})
	}
}
