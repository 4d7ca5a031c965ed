package extract

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parsePage(t *testing.T, html string) *page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	if err != nil {
		t.Fatalf("Failed to parse fixture HTML: %v", err)
	}
	return &page{doc: doc, url: pageURL}
}

func TestDeref(t *testing.T) {
	nodes := []interface{}{"zero", 1.5, map[string]interface{}{"k": "v"}}

	// integral in-range numbers dereference to the slot's value
	if got := deref(nodes, float64(2)); !reflect.DeepEqual(got, nodes[2]) {
		t.Errorf("Expected slot 2, got %v", got)
	}

	// everything else passes through untouched
	for _, literal := range []interface{}{1.5, float64(-1), float64(99), "text", nil, true} {
		if got := deref(nodes, literal); !reflect.DeepEqual(got, literal) {
			t.Errorf("Expected literal %v to pass through, got %v", literal, got)
		}
	}
}

func TestEmbeddedState_BackReferences(t *testing.T) {
	p := parsePage(t, `<html><body>
<script id="__NUXT_DATA__" type="application/json">[{"restaurantId":1,"latitude":1,"longitude":2,"description":3,"services":5},-37.821,144.952,{"copy":4},"Great spot.",[6],{"name":7},"Delivery"]</script>
</body></html>`)

	got := embeddedState(p)

	if got.latitude == nil || *got.latitude != -37.821 {
		t.Errorf("Unexpected latitude: %v", got.latitude)
	}
	if got.longitude == nil || *got.longitude != 144.952 {
		t.Errorf("Unexpected longitude: %v", got.longitude)
	}
	if got.description == nil || *got.description != "Great spot." {
		t.Errorf("Unexpected description: %v", got.description)
	}
	if !reflect.DeepEqual(got.services, []string{"Delivery"}) {
		t.Errorf("Unexpected services: %v", got.services)
	}
}

func TestEmbeddedState_InlineValues(t *testing.T) {
	// older page revision: the store object holds values directly
	p := parsePage(t, `<html><body>
<script id="__NUXT_DATA__">[{"restaurantId":"r-42","latitude":-27.47,"longitude":153.02,"description":"Inline copy.","services":[{"name":"Takeaway"},{"name":""}]}]</script>
</body></html>`)

	got := embeddedState(p)

	if got.latitude == nil || *got.latitude != -27.47 {
		t.Errorf("Unexpected latitude: %v", got.latitude)
	}
	if got.description == nil || *got.description != "Inline copy." {
		t.Errorf("Unexpected description: %v", got.description)
	}
	if !reflect.DeepEqual(got.services, []string{"Takeaway"}) {
		t.Errorf("Expected empty-named service to be skipped, got %v", got.services)
	}
}

func TestEmbeddedState_DegradesToNothing(t *testing.T) {
	cases := map[string]string{
		"no script":      `<html><body></body></html>`,
		"malformed json": `<html><body><script id="__NUXT_DATA__">{not an array</script></body></html>`,
		"no store node":  `<html><body><script id="__NUXT_DATA__">[{"unrelated":true},42]</script></body></html>`,
	}

	for name, html := range cases {
		got := embeddedState(parsePage(t, html))
		if !reflect.DeepEqual(got, partial{}) {
			t.Errorf("%s: expected empty partial, got %+v", name, got)
		}
	}
}
