package extract

import (
	"encoding/json"
	"log"
	"math"
	"strings"
)

// embeddedState pulls geo-coordinates, the free-text description and the
// services list from the page's __NUXT_DATA__ blob: a flat JSON array that
// encodes an object graph by replacing nested values with integer indices
// into the same array. Failures here only cost the fields this strategy
// supplies, never the record.
func embeddedState(p *page) partial {
	raw := strings.TrimSpace(p.doc.Find(`script#__NUXT_DATA__[type="application/json"]`).First().Text())
	if raw == "" {
		// older page revisions inline the blob without the type attribute
		raw = strings.TrimSpace(p.doc.Find("script#__NUXT_DATA__").First().Text())
	}
	if raw == "" {
		log.Printf("No __NUXT_DATA__ script tag found on %s", p.url)
		return partial{}
	}

	var nodes []interface{}
	if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
		log.Printf("Failed to parse JSON from __NUXT_DATA__ on %s: %v", p.url, err)
		return partial{}
	}

	store := findStoreNode(nodes)
	if store == nil {
		log.Printf("Could not find store data object in __NUXT_DATA__ on %s", p.url)
		return partial{}
	}

	var out partial

	if lat, ok := deref(nodes, store["latitude"]).(float64); ok {
		out.latitude = &lat
	}
	if lon, ok := deref(nodes, store["longitude"]).(float64); ok {
		out.longitude = &lon
	}

	switch desc := deref(nodes, store["description"]).(type) {
	case map[string]interface{}:
		if copyText, ok := deref(nodes, desc["copy"]).(string); ok {
			out.description = strptr(copyText)
		}
	case string:
		out.description = strptr(desc)
	}

	if services, ok := deref(nodes, store["services"]).([]interface{}); ok {
		for _, svc := range services {
			obj, ok := deref(nodes, svc).(map[string]interface{})
			if !ok {
				continue
			}
			if name, ok := deref(nodes, obj["name"]).(string); ok && strings.TrimSpace(name) != "" {
				out.services = append(out.services, strings.TrimSpace(name))
			}
		}
	}

	return out
}

// findStoreNode scans the state array for the object representing the
// restaurant entity, identified by its restaurantId key.
func findStoreNode(nodes []interface{}) map[string]interface{} {
	for _, node := range nodes {
		if obj, ok := node.(map[string]interface{}); ok {
			if _, ok := obj["restaurantId"]; ok {
				return obj
			}
		}
	}
	return nil
}

// deref resolves one level of the array's index back-references: a
// non-negative integral number that fits the array stands in for the value
// stored at that slot, anything else already is the value. Older page
// revisions store values inline, which this shape tolerates. Lookups are
// forward-only; the graph is never rebuilt.
func deref(nodes []interface{}, v interface{}) interface{} {
	idx, ok := v.(float64)
	if !ok {
		return v
	}
	if idx != math.Trunc(idx) || idx < 0 || int(idx) >= len(nodes) {
		return v
	}
	return nodes[int(idx)]
}
