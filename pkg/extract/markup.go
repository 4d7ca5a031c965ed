package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// serviceChips matches the service badges rendered in the store details
// panel across the page revisions seen so far.
const serviceChips = ".c-restaurant-details .c-chip, .c-restaurant__services .c-chip, [data-testid='service-chip']"

// visibleMarkup is the last-resort strategy reading the rendered DOM: chip
// labels become the services list and the readability excerpt becomes the
// description, for pages whose state blob is missing or reshaped. The merge
// only uses these when the earlier strategies came up empty.
func visibleMarkup(p *page) partial {
	var out partial

	p.doc.Find(serviceChips).Each(func(i int, s *goquery.Selection) {
		if label := strings.TrimSpace(s.Text()); label != "" {
			out.services = append(out.services, label)
		}
	})

	if html, err := p.doc.Html(); err == nil {
		if article, err := readability.FromReader(strings.NewReader(html), nil); err == nil {
			out.description = strptr(article.Excerpt)
		}
	}

	return out
}
