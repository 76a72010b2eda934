package applitrack

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"jobwatch/lib/dump"
	"jobwatch/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/applitrack")

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

type Options struct {
	// AppliTrack organization slug, e.g. "washk12"
	District string
	// overrides the listing url derived from District, used by tests
	ListingURL string
	UserAgent  string
}

type Client struct {
	district   string
	listingURL string
	http       *resty.Client
	sink       dump.Sink
	debug      bool
}

func New(opts Options) (*Client, error) {
	if opts.District == "" {
		return nil, fmt.Errorf("district is required")
	}

	listingURL := opts.ListingURL
	if listingURL == "" {
		listingURL = fmt.Sprintf(
			"https://www.applitrack.com/%s/onlineapp/jobpostings/Output.asp?all=1&",
			opts.District,
		)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport, cloudflarebp.Options{
		AddMissingHeaders: true,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
			"User-Agent":      userAgent,
		},
	})
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/applitrack/http")

	return &Client{
		district:   opts.District,
		listingURL: listingURL,
		http:       client,
	}, nil
}

// EnableDebug turns on verbose extraction diagnostics and dumps raw
// and intermediate HTML artifacts into the sink.
func (c *Client) EnableDebug(sink dump.Sink) {
	c.sink = sink
	c.debug = true
}

func (c *Client) postingURL(id string) string {
	return fmt.Sprintf("https://www.applitrack.com/%s/onlineapp/default.aspx?AppliTrackJobId=%s", c.district, id)
}

func (c *Client) allPostingsURL() string {
	return fmt.Sprintf("https://www.applitrack.com/%s/onlineapp/default.aspx?all=1", c.district)
}

func (c *Client) FetchListing(ctx context.Context) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.listingURL)
	if err != nil {
		return "", err
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("fetch job listing: unexpected status %s", res.Status())
	}
	return string(res.Body()), nil
}

var docWriteRe = regexp.MustCompile(`(?s)document\.write\('(.*?)'\);`)

// RecoverEmbeddedHTML extracts the markup the listing page emits
// through document.write statements, concatenates it and reverses the
// quote escaping.
func RecoverEmbeddedHTML(page string) string {
	var buf strings.Builder
	for _, m := range docWriteRe.FindAllStringSubmatch(page, -1) {
		buf.WriteString(m[1])
	}
	combined := buf.String()
	combined = strings.ReplaceAll(combined, `\'`, `'`)
	combined = strings.ReplaceAll(combined, `\"`, `"`)
	return combined
}

// SplitPostingBlocks finds every title table and returns the markup of
// its enclosing postingsList container, one block per posting.
func SplitPostingBlocks(combined string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(combined))
	if err != nil {
		return nil, err
	}

	var blocks []string
	var blockErr error
	doc.Find("table.title").Each(func(_ int, sel *goquery.Selection) {
		container := sel.ParentsFiltered("ul.postingsList").First()
		if container.Length() == 0 {
			return
		}
		block, err := goquery.OuterHtml(container)
		if err != nil {
			blockErr = err
			return
		}
		blocks = append(blocks, block)
	})
	if blockErr != nil {
		return nil, blockErr
	}
	return blocks, nil
}

// Harvest fetches the listing page and extracts one JobRecord per
// posting block. zero postings is a valid, empty result.
func (c *Client) Harvest(ctx context.Context) ([]JobRecord, error) {
	ctx, span := tracer.Start(ctx, "Harvest")
	defer span.End()

	slog.Info("downloading job listings", "url", c.listingURL)
	page, err := c.FetchListing(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}

	stamp := time.Now().Format("20060102_150405")
	if c.debug {
		c.sink.Write(fmt.Sprintf("raw_%s.html", stamp), page)
	}

	combined := RecoverEmbeddedHTML(page)
	if c.debug {
		c.sink.Write(fmt.Sprintf("combined_%s.html", stamp), combined)
		logStructureCensus(page, combined)
	}

	blocks, err := SplitPostingBlocks(combined)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to split posting blocks")
		return nil, err
	}

	slog.Info("found job postings", "count", len(blocks))
	if len(blocks) == 0 {
		return nil, nil
	}

	jobs := make([]JobRecord, 0, len(blocks))
	for i, block := range blocks {
		index := i + 1
		if c.debug && index <= debugBlockDumps {
			c.sink.Write(fmt.Sprintf("job_%d_raw.html", index), block)
		}

		rec := c.ExtractJob(block, index)
		jobs = append(jobs, rec)

		if c.debug && index <= debugBlockDumps {
			logExtractionDetail(index, rec)
		}
		if index == 1 || index == len(blocks) || index%25 == 0 {
			slog.Info("processed jobs", "done", index, "total", len(blocks))
		}
	}
	return jobs, nil
}
