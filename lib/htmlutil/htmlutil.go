package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under the given node verbatim.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FlattenText collects every non-empty text node under the node,
// trimming each one and joining them with newlines. the result is
// what free-text pattern matching runs against.
func FlattenText(node *html.Node) string {
	var lines []string
	flattenRecursive(node, &lines)
	return strings.Join(lines, "\n")
}

func flattenRecursive(node *html.Node, lines *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		trimmed := strings.TrimSpace(node.Data)
		if trimmed != "" {
			*lines = append(*lines, trimmed)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		flattenRecursive(child, lines)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeSpace strips non-printable runes and collapses runs of
// whitespace into single spaces.
func NormalizeSpace(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors extracts the link text and href of every node in the
// selection.
func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		anchors = append(anchors, Anchor{
			Name: NormalizeSpace(GetText(n)),
			Href: href,
		})
	}
	return anchors
}
