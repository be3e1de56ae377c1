package browser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/padraicbc/travscrape/extract"
	"github.com/padraicbc/travscrape/parse"
)

const (
	gridRoot  = "div[class*='MuiDataGrid-root']"
	gridRow   = "div[role='row'][data-rowindex]"
	maxBlocks = 50
)

var navSelectors = []string{"[class*='RaceDayNavigator'] span", "header span"}

// Document is a rendered page parsed with goquery. It implements
// extract.Page.
type Document struct {
	doc *goquery.Document
}

var _ extract.Page = (*Document)(nil)

func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// NavTexts reads the first navigation selector that has any text.
func (d *Document) NavTexts() []string {
	for _, sel := range navSelectors {
		var texts []string
		d.doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := parse.CleanCell(s.Text()); t != "" {
				texts = append(texts, t)
			}
		})
		if len(texts) > 0 {
			return texts
		}
	}
	return nil
}

// Sections walks the page in document order. Each "Lopp" heading opens a
// section; paragraphs before its grid become Info and the first grid after
// it supplies the rows.
func (d *Document) Sections() []extract.Section {
	var (
		out     []extract.Section
		cur     *extract.Section
		hasGrid bool
		info    []string
	)
	flush := func() {
		if cur != nil {
			cur.Info = strings.Join(info, "\n")
			out = append(out, *cur)
		}
	}

	d.doc.Find("h2, p, " + gridRoot).Each(func(_ int, s *goquery.Selection) {
		switch {
		case goquery.NodeName(s) == "h2":
			text := parse.CleanCell(s.Text())
			if !strings.HasPrefix(text, "Lopp") {
				return
			}
			flush()
			cur, hasGrid, info = &extract.Section{Header: text}, false, nil
		case cur == nil || hasGrid:
		case goquery.NodeName(s) == "p":
			if t := parse.CleanCell(s.Text()); t != "" {
				info = append(info, t)
			}
		default:
			hasGrid = true
			cur.Rows = rows(s)
		}
	})
	flush()
	return out
}

func (d *Document) Rows() []extract.Row {
	return rows(d.doc.Selection)
}

// Blocks returns texts matching re of elements without block children, so a
// wrapper never repeats its children's text glued together. The cap applies
// to matches only.
func (d *Document) Blocks(re *regexp.Regexp) []string {
	var out []string
	d.doc.Find("div, span, p, h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Filter("div, p, h1, h2, h3").Length() > 0 {
			return true
		}
		if t := parse.CleanCell(s.Text()); t != "" && re.MatchString(t) {
			out = append(out, t)
		}
		return len(out) < maxBlocks
	})
	return out
}

func rows(root *goquery.Selection) []extract.Row {
	var out []extract.Row
	root.Find(gridRow).Each(func(_ int, r *goquery.Selection) {
		row := extract.Row{}
		r.Find("div[data-field]").Each(func(_ int, c *goquery.Selection) {
			field, _ := c.Attr("data-field")
			if _, seen := row[field]; field == "" || seen {
				return
			}
			row[field] = extract.Cell{
				Text:   parse.CleanCell(c.Text()),
				Number: parse.CleanCell(c.Find("div").First().Text()),
				Name:   parse.CleanCell(c.Find("a, span").First().Text()),
				Struck: c.Find("[class*='linethrough']").Length() > 0,
			}
		})
		if len(row) > 0 {
			out = append(out, row)
		}
	})
	return out
}
