package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func TestGetText(t *testing.T) {
	doc := parse(t, `<div>hello <b>bold</b> world</div>`)
	require.Equal(t, "hello bold world", GetText(doc.Nodes[0]))
}

func TestFlattenText(t *testing.T) {
	doc := parse(t, `<div>
		<span>  first  </span>
		<span></span>
		<p>second</p>
	</div>`)
	require.Equal(t, "first\nsecond", FlattenText(doc.Nodes[0]))
}

func TestNormalizeSpace(t *testing.T) {
	require.Equal(t, "a b c", NormalizeSpace("  a \t b \n\n c  "))
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `<div>
		<a href="https://example.com/a.pdf">  Job   Description </a>
		<a>no href</a>
	</div>`)

	anchors := GetAnchors(doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "Job Description", Href: "https://example.com/a.pdf"},
		{Name: "no href", Href: ""},
	}, anchors)
}
