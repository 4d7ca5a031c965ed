package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ldEntity mirrors the schema.org fields we care about. Address and
// dayOfWeek vary in shape across page revisions, so they decode lazily.
type ldEntity struct {
	Name                      string          `json:"name"`
	Telephone                 string          `json:"telephone"`
	Address                   json.RawMessage `json:"address"`
	OpeningHoursSpecification []ldHours       `json:"openingHoursSpecification"`
}

type ldAddress struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
}

type ldHours struct {
	DayOfWeek json.RawMessage `json:"dayOfWeek"`
	Opens     string          `json:"opens"`
	Closes    string          `json:"closes"`
}

// structuredData pulls name, phone, address and opening hours from the
// page's ld+json block. Unlike the other strategies this one is fatal when
// it finds nothing: it returns ErrNoStructuredData and the page produces no
// record.
func structuredData(p *page) (partial, error) {
	scripts := p.doc.Find(`script[type="application/ld+json"]`)
	if scripts.Length() == 0 {
		return partial{}, fmt.Errorf("%w on %s", ErrNoStructuredData, p.url)
	}

	var entity *ldEntity
	scripts.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if e := decodeEntity(s.Text()); e != nil {
			entity = e
			return false
		}
		return true
	})
	if entity == nil {
		return partial{}, fmt.Errorf("%w on %s: no block parsed as a store entity", ErrNoStructuredData, p.url)
	}

	out := partial{
		name:  strptr(entity.Name),
		phone: strptr(entity.Telephone),
	}

	if addr := formatAddress(entity.Address); addr != "" {
		out.address = &addr
	}

	for _, oh := range entity.OpeningHoursSpecification {
		days, err := dayLabels(oh.DayOfWeek)
		if err != nil {
			log.Printf("Skipping malformed opening-hours day on %s: %v", p.url, err)
			continue
		}
		for _, day := range days {
			out.hours = append(out.hours, tradingHoursEntry(day, oh.Opens, oh.Closes))
		}
	}
	sortTradingHours(out.hours)

	return out, nil
}

// decodeEntity parses one ld+json payload and returns the store entity it
// describes, or nil. The payload may be the entity itself, an array of
// entities, or a @graph wrapper.
func decodeEntity(raw string) *ldEntity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	usable := func(e *ldEntity) bool {
		return e != nil && (e.Name != "" || e.Telephone != "" || len(e.OpeningHoursSpecification) > 0)
	}

	var single ldEntity
	if err := json.Unmarshal([]byte(raw), &single); err == nil && usable(&single) {
		return &single
	}

	var list []ldEntity
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		for i := range list {
			if usable(&list[i]) {
				return &list[i]
			}
		}
	}

	var graph struct {
		Graph []ldEntity `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(raw), &graph); err == nil {
		for i := range graph.Graph {
			if usable(&graph.Graph[i]) {
				return &graph.Graph[i]
			}
		}
	}

	return nil
}

// formatAddress renders the address field, which is either a plain string or
// a PostalAddress object whose non-empty parts join with ", ".
func formatAddress(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	var addr ldAddress
	if err := json.Unmarshal(raw, &addr); err != nil {
		return ""
	}

	var parts []string
	for _, part := range []string{addr.StreetAddress, addr.AddressLocality, addr.AddressRegion} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

// dayLabels normalizes the dayOfWeek field: a string, an array of strings,
// or schema.org URLs ("https://schema.org/Monday").
func dayLabels(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing dayOfWeek")
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{dayName(one)}, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		days := make([]string, 0, len(many))
		for _, d := range many {
			days = append(days, dayName(d))
		}
		return days, nil
	}

	return nil, fmt.Errorf("unexpected dayOfWeek shape: %s", string(raw))
}

func dayName(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.LastIndex(label, "/"); i >= 0 {
		label = label[i+1:]
	}
	return label
}
