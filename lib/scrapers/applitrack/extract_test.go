package applitrack

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	client, err := New(Options{District: "washk12"})
	require.NoError(t, err)
	return client
}

const samplePosting = `<ul class="postingsList">
  <li>
    <table class="title"><tr><td id="wrapword">Elementary Teacher</td></tr></table>
    <span>JobID: 4821</span>
    <ul>
      <li><span class="label">Position Type:</span> <span class="normal">Elementary School Teaching</span></li>
      <li><span class="label">Location:</span> <span class="normal">Coral Cliffs Elementary</span></li>
      <li><span class="label">Date Posted:</span> <span class="normal">8/12/2026</span></li>
      <li><span class="label">Closing Date:</span> <span class="normal">8/26/2026</span></li>
      <li><span class="label">Status:</span> <span class="normal">Full-time, 1.0 FTE</span></li>
      <li><span class="label">Minimum Requirements:</span> <span class="normal">Valid Utah teaching license with elementary endorsements preferred.</span></li>
    </ul>
    <span id="DescriptionText4821">Teach a self-contained elementary classroom.</span>
    <div class="AppliTrackJobPostingAttachments"><a href="https://example.com/desc.pdf">Job Description</a></div>
    <input class="screenOnly ApplyButton" type="button" value=" Apply " onclick="applyFor('4821');" />
  </li>
</ul>`

func TestExtractJob(t *testing.T) {
	client := testClient(t)
	rec := client.ExtractJob(samplePosting, 1)

	require.Equal(t, "4821", rec.JobID)
	require.Equal(t, "Elementary Teacher", rec.Title)
	require.Equal(t, "Elementary School Teaching", rec.PositionType)
	require.Equal(t, "Coral Cliffs Elementary", rec.Location)
	require.Equal(t, "8/12/2026", rec.DatePosted)
	require.Equal(t, "8/26/2026", rec.ClosingDate)
	require.Equal(t, "Full-time, 1.0 FTE", rec.Status)
	require.Equal(t, "Valid Utah teaching license with elementary endorsements preferred.", rec.MinimumRequirements)
	require.Equal(t, "Teach a self-contained elementary classroom.", rec.Description)
	require.Equal(t, []Attachment{
		{Text: "Job Description", URL: "https://example.com/desc.pdf"},
	}, rec.Attachments)
	require.Equal(t, "https://www.applitrack.com/washk12/onlineapp/default.aspx?AppliTrackJobId=4821", rec.URL)

	// tertiary fallbacks scanning already-extracted sibling fields
	require.Equal(t, "1.0 FTE", rec.FTE)
	require.Contains(t, rec.EndorsementsRequired, "endorsements")
	require.Contains(t, rec.LicenseRequirements, "license")
}

func TestExtractJobIDFromText(t *testing.T) {
	client := testClient(t)
	rec := client.ExtractJob(`<div><span>JobID: 9917</span></div>`, 4)
	require.Equal(t, "9917", rec.JobID)
	require.False(t, rec.HasSyntheticID())
}

func TestExtractJobSyntheticID(t *testing.T) {
	client := testClient(t)
	rec := client.ExtractJob(`<div><p>nothing useful here</p></div>`, 7)

	require.Equal(t, "job_7", rec.JobID)
	require.True(t, rec.HasSyntheticID())
	require.Equal(t, "https://www.applitrack.com/washk12/onlineapp/default.aspx?all=1", rec.URL)
}

func TestExtractJobEmptyFragment(t *testing.T) {
	client := testClient(t)
	rec := client.ExtractJob("", 2)

	require.Equal(t, "job_2", rec.JobID)
	require.Empty(t, rec.Title)
	require.Empty(t, rec.PositionType)
	require.Empty(t, rec.Location)
	require.Empty(t, rec.DatePosted)
	require.Empty(t, rec.DateAvailable)
	require.Empty(t, rec.ClosingDate)
	require.Empty(t, rec.Status)
	require.Empty(t, rec.MinimumRequirements)
	require.Empty(t, rec.SalaryInformation)
	require.Empty(t, rec.Description)
	require.NotNil(t, rec.Attachments)
	require.Empty(t, rec.Attachments)
}

func TestExtractJobFreeTextFallback(t *testing.T) {
	client := testClient(t)
	rec := client.ExtractJob(`<div>
		<p>Position Type: Custodial</p>
		<p>Location: District Office</p>
		<p>The salary schedule for this position starts at lane 1.</p>
	</div>`, 1)

	require.Equal(t, "Custodial", rec.PositionType)
	require.Equal(t, "District Office", rec.Location)
	require.Contains(t, rec.SalaryInformation, "salary schedule")
}

func TestDescriptionTruncation(t *testing.T) {
	client := testClient(t)

	long := strings.Repeat("a", 600)
	rec := client.ExtractJob(fmt.Sprintf(`<div><span id="DescriptionText1">%s</span></div>`, long), 1)
	require.Len(t, rec.Description, descriptionLimit+3)
	require.True(t, strings.HasSuffix(rec.Description, "..."))

	exact := strings.Repeat("b", descriptionLimit)
	rec = client.ExtractJob(fmt.Sprintf(`<div><span id="DescriptionText1">%s</span></div>`, exact), 1)
	require.Equal(t, exact, rec.Description)
	require.False(t, strings.HasSuffix(rec.Description, "..."))
}

func TestDescriptionFallbackLongSpan(t *testing.T) {
	client := testClient(t)
	long := strings.Repeat("c", 150)
	rec := client.ExtractJob(fmt.Sprintf(`<div>
		<span id="FooterText">short</span>
		<span id="BodyText1">%s</span>
	</div>`, long), 1)
	require.Equal(t, long, rec.Description)
}
