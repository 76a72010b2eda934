package applitrack

import (
	"fmt"
	"regexp"
	"strings"

	"jobwatch/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// description is truncated to this many characters, with a visible
// "..." marker appended when anything was cut off.
const descriptionLimit = 500

var (
	jobIDTextRe    = regexp.MustCompile(`JobID:\s*(\d+)`)
	applyOnclickRe = regexp.MustCompile(`applyFor\('(\d+)'`)

	positionTypeRe  = regexp.MustCompile(`Position Type:?\s*(.*?)(?:\n|$)`)
	locationRe      = regexp.MustCompile(`Location:?\s*(.*?)(?:\n|$)`)
	datePostedRe    = regexp.MustCompile(`Date Posted:?\s*(.*?)(?:\n|$)`)
	dateAvailableRe = regexp.MustCompile(`Date Available:?\s*(.*?)(?:\n|$)`)
	closingDateRe   = regexp.MustCompile(`Closing Date:?\s*(.*?)(?:\n|$)`)
	statusRe        = regexp.MustCompile(`Status:?\s*(.*?)(?:\n|$)`)
	requirementsRe  = regexp.MustCompile(`Minimum Requirements:?\s*(.*?)(?:\n|$)`)
	salaryRe        = regexp.MustCompile(`Salary:?\s*(.*?)(?:\n|$)`)
	endorsementsRe  = regexp.MustCompile(`Endorsements?:?\s*(.*?)(?:\n|$)`)
	licenseRe       = regexp.MustCompile(`License Requirements?:?\s*(.*?)(?:\n|$)`)

	salaryContextRe      = regexp.MustCompile(`(?i)salary schedule|salary is`)
	fteRe                = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*FTE)`)
	endorsementMentionRe = regexp.MustCompile(`(?i)endorsements?`)
	licenseMentionRe     = regexp.MustCompile(`(?i)license`)
)

// ExtractJob turns the markup of a single posting block into a
// JobRecord. every field degrades independently: structured lookup
// first, then a pattern match over the flattened text, then (for a few
// fields) a scan of an already-extracted sibling field. malformed
// markup produces a sparse record, never an error.
func (c *Client) ExtractJob(fragment string, index int) JobRecord {
	rec := JobRecord{
		JobID:       fmt.Sprintf("job_%d", index),
		Attachments: []Attachment{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		rec.URL = c.allPostingsURL()
		return rec
	}

	allText := ""
	if len(doc.Nodes) > 0 {
		allText = htmlutil.FlattenText(doc.Nodes[0])
	}

	rec.Title = strings.TrimSpace(doc.Find("table.title td#wrapword").First().Text())

	if m := jobIDTextRe.FindStringSubmatch(allText); m != nil {
		rec.JobID = m[1]
	}
	doc.Find("input.screenOnly.ApplyButton").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("value", "") != " Apply " {
			return true
		}
		if m := applyOnclickRe.FindStringSubmatch(sel.AttrOr("onclick", "")); m != nil {
			rec.JobID = m[1]
			return false
		}
		return true
	})

	fields := labeledFields(doc)

	rec.PositionType = lookupField(fields, allText, "Position Type", positionTypeRe)
	rec.Location = lookupField(fields, allText, "Location", locationRe)
	rec.DatePosted = lookupField(fields, allText, "Date Posted", datePostedRe)
	rec.DateAvailable = lookupField(fields, allText, "Date Available", dateAvailableRe)
	rec.ClosingDate = lookupField(fields, allText, "Closing Date", closingDateRe)
	rec.Status = lookupField(fields, allText, "Status", statusRe)
	rec.MinimumRequirements = lookupField(fields, allText, "Minimum Requirements", requirementsRe)

	rec.SalaryInformation = lookupField(fields, allText, "Salary", salaryRe)
	if rec.SalaryInformation == "" {
		if loc := salaryContextRe.FindStringIndex(allText); loc != nil {
			rec.SalaryInformation = contextWindow(allText, loc, 50, 150)
		}
	}

	rec.FTE = fields["FTE"]
	if rec.FTE == "" && rec.Status != "" {
		if m := fteRe.FindStringSubmatch(rec.Status); m != nil {
			rec.FTE = m[1]
		}
	}

	rec.EndorsementsRequired = lookupField(fields, allText, "Endorsements Required", endorsementsRe)
	if rec.EndorsementsRequired == "" && rec.MinimumRequirements != "" {
		if loc := endorsementMentionRe.FindStringIndex(rec.MinimumRequirements); loc != nil {
			rec.EndorsementsRequired = contextWindow(rec.MinimumRequirements, loc, 20, 100)
		}
	}

	rec.LicenseRequirements = lookupField(fields, allText, "License Requirements", licenseRe)
	if rec.LicenseRequirements == "" && rec.MinimumRequirements != "" {
		if loc := licenseMentionRe.FindStringIndex(rec.MinimumRequirements); loc != nil {
			rec.LicenseRequirements = contextWindow(rec.MinimumRequirements, loc, 20, 100)
		}
	}

	rec.Description = truncateDescription(extractDescription(doc, fields))

	for _, a := range htmlutil.GetAnchors(doc.Find("div.AppliTrackJobPostingAttachments a")) {
		rec.Attachments = append(rec.Attachments, Attachment{Text: a.Name, URL: a.Href})
	}

	if rec.HasSyntheticID() {
		rec.URL = c.allPostingsURL()
	} else {
		rec.URL = c.postingURL(rec.JobID)
	}
	return rec
}

// postings list their metadata as <li> items holding a span.label name
// and one or more span.normal values.
func labeledFields(doc *goquery.Document) map[string]string {
	fields := map[string]string{}
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		label := li.Find("span.label").First()
		if label.Length() == 0 {
			return
		}
		name := strings.ReplaceAll(strings.TrimSpace(label.Text()), ":", "")

		var values []string
		li.Find("span.normal").Each(func(_ int, v *goquery.Selection) {
			values = append(values, strings.TrimSpace(v.Text()))
		})
		if len(values) > 0 {
			fields[name] = strings.Join(values, " ")
		}
	})
	return fields
}

func lookupField(fields map[string]string, text, label string, re *regexp.Regexp) string {
	if v := fields[label]; v != "" {
		return v
	}
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// a bounded character window around a pattern match, used when a field
// is only ever mentioned inside free text.
func contextWindow(text string, loc []int, before, after int) string {
	start := max(0, loc[0]-before)
	end := min(len(text), loc[1]+after)
	return strings.TrimSpace(text[start:end])
}

func extractDescription(doc *goquery.Document, fields map[string]string) string {
	desc := ""
	doc.Find("span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.HasPrefix(sel.AttrOr("id", ""), "DescriptionText") {
			desc = strings.TrimSpace(sel.Text())
			return false
		}
		return true
	})
	if desc != "" {
		return desc
	}

	if v, ok := fields["Additional Information"]; ok {
		return v
	}

	// last resort: any span with a Text-ish id whose contents are long
	// enough to plausibly be a description
	doc.Find("span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id := sel.AttrOr("id", "")
		if id == "" || !strings.Contains(id, "Text") {
			return true
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) > 100 {
			desc = text
			return false
		}
		return true
	})
	return desc
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}
	return string(runes[:descriptionLimit]) + "..."
}
