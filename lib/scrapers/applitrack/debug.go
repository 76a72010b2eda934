package applitrack

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// raw HTML is dumped for the first few posting blocks only
const debugBlockDumps = 3

// a census of the structural markers the harvester depends on, logged
// in debug mode to diagnose extraction drift when the source markup
// changes.
func logStructureCensus(page, combined string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(combined))
	if err != nil {
		slog.Debug("structure census unavailable", "err", err)
		return
	}

	slog.Debug("structure census",
		"document_writes", len(docWriteRe.FindAllStringIndex(page, -1)),
		"script_tags", strings.Count(page, "<script"),
		"posting_lists", doc.Find("ul.postingsList").Length(),
		"title_tables", doc.Find("table.title").Length(),
		"label_spans", doc.Find("span.label").Length(),
		"normal_spans", doc.Find("span.normal").Length(),
		"attachment_divs", doc.Find("div.AppliTrackJobPostingAttachments").Length(),
	)
}

func logExtractionDetail(index int, rec JobRecord) {
	slog.Debug("extracted job",
		"index", index,
		"job_id", rec.JobID,
		"title", rec.Title,
		"position_type", rec.PositionType,
		"location", rec.Location,
		"date_posted", rec.DatePosted,
		"closing_date", rec.ClosingDate,
		"has_description", rec.Description != "",
		"attachments", len(rec.Attachments),
	)
}
