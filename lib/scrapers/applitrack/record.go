package applitrack

import "strings"

type Attachment struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// JobRecord is one job posting flattened into named string fields.
// fields that could not be extracted are empty strings, a posting is
// never dropped for being sparse.
type JobRecord struct {
	JobID                string       `json:"job_id"`
	Title                string       `json:"title"`
	PositionType         string       `json:"position_type"`
	Location             string       `json:"location"`
	DatePosted           string       `json:"date_posted"`
	DateAvailable        string       `json:"date_available"`
	ClosingDate          string       `json:"closing_date"`
	Status               string       `json:"status"`
	MinimumRequirements  string       `json:"minimum_requirements"`
	SalaryInformation    string       `json:"salary_information"`
	Description          string       `json:"description"`
	Attachments          []Attachment `json:"attachments"`
	URL                  string       `json:"url"`
	FTE                  string       `json:"fte,omitempty"`
	EndorsementsRequired string       `json:"endorsements_required,omitempty"`
	LicenseRequirements  string       `json:"license_requirements,omitempty"`
}

// a synthetic id is assigned from the posting's ordinal position when
// no real id could be discovered in the markup.
func (r JobRecord) HasSyntheticID() bool {
	return strings.HasPrefix(r.JobID, "job_")
}
