package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pahe/internal/media"
)

// Details parses the optional metadata on a catalog entry page. Fields that
// are missing from the page are left empty; only malformed HTML is an error.
func Details(page string) (media.Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return media.Details{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var d media.Details
	d.Synopsis = strings.TrimSpace(doc.Find(".anime-synopsis").First().Text())

	img := doc.Find(".anime-poster img").First()
	d.Poster = img.AttrOr("data-src", img.AttrOr("src", ""))
	if d.Poster == "" {
		d.Poster, _ = doc.Find(`meta[property="og:image"]`).Attr("content")
	}

	doc.Find(".anime-info p").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("strong").First().Text())
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.Text()), label))
		switch strings.TrimSuffix(label, ":") {
		case "Type":
			d.Type = value
		case "Status":
			d.Status = value
		}
	})

	return d, nil
}
