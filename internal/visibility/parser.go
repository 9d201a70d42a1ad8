package visibility

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/internal/report"
	"github.com/yegors/starwatch/internal/window"
)

// ParsePage extracts the timing groups from a rendered prediction page.
// Times on the page are read in loc; only passes in the forward window
// from now are kept. A group whose error marker is present is empty.
func ParsePage(document string, now time.Time, loc *time.Location) (*Page, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, failure.New(failure.Parse, "parsing rendered page", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	page := &Page{
		Visible: doc.Find("#"+noVisibilityID).Length() == 0,
	}

	if page.Good, err = parseGroup(doc, goodGroup, now, loc); err != nil {
		return nil, err
	}
	if page.Average, err = parseGroup(doc, averageGroup, now, loc); err != nil {
		return nil, err
	}

	return page, nil
}

func parseGroup(doc *goquery.Document, group timingGroup, now time.Time, loc *time.Location) ([]report.TimingEntry, error) {
	if doc.Find("#"+group.errorID).Length() > 0 {
		return nil, nil
	}

	container := doc.Find("#" + group.containerID)
	if container.Length() == 0 {
		return nil, failure.Newf(failure.PageStructure, "%s timings: element #%s not found", group.name, group.containerID)
	}

	var entries []report.TimingEntry
	var parseErr error
	container.Find(entryClass).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		entry, keep, err := parseEntry(sel, now, loc)
		if err != nil {
			parseErr = fmt.Errorf("%s timings entry %d: %w", group.name, i, err)
			return false
		}
		if keep {
			entries = append(entries, entry)
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

// parseEntry reads one .timingEntry. keep is false for passes outside the window.
func parseEntry(sel *goquery.Selection, now time.Time, loc *time.Location) (entry report.TimingEntry, keep bool, err error) {
	timing, err := child(sel, timingClass)
	if err != nil {
		return entry, false, err
	}
	date := visibleText(timing)
	at, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return entry, false, failure.New(failure.Parse, fmt.Sprintf("parsing pass time %q", date), err)
	}
	if !window.InWindow(now, at, window.Forward) {
		return entry, false, nil
	}

	dim, err := child(sel, dimClass)
	if err != nil {
		return entry, false, err
	}
	bottom, err := child(sel, bottomClass)
	if err != nil {
		return entry, false, err
	}
	note, err := child(sel, noteClass)
	if err != nil {
		return entry, false, err
	}

	var directions []string
	bottom.Find(directionClass).Each(func(_ int, d *goquery.Selection) {
		directions = append(directions, visibleText(d))
	})

	return report.TimingEntry{
		Date:       date,
		Brightness: visibleText(dim),
		Direction:  strings.Join(directions, "-"),
		Note:       visibleText(note),
		At:         at,
	}, true, nil
}

func child(sel *goquery.Selection, class string) (*goquery.Selection, error) {
	found := sel.Find(class).First()
	if found.Length() == 0 {
		return nil, failure.Newf(failure.PageStructure, "element %s not found", class)
	}
	return found, nil
}

// visibleText approximates what a browser shows for the selection: text of
// hidden, script and style elements is dropped and whitespace collapsed.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if isHidden(n) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}

	if n.Type == html.ElementNode && breaksLine(n.DataAtom) {
		b.WriteByte(' ')
	}
}

func isHidden(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			if strings.Contains(strings.ReplaceAll(a.Val, " ", ""), "display:none") {
				return true
			}
		}
	}
	return false
}

func breaksLine(a atom.Atom) bool {
	switch a {
	case atom.Br, atom.Div, atom.P, atom.Li, atom.Tr, atom.Td, atom.H1, atom.H2, atom.H3, atom.H4:
		return true
	}
	return false
}
