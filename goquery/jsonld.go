package goquery

import (
	"encoding/json"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// trailingComma matches a comma directly before a closing brace or bracket.
var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// articleTypes are the schema.org types accepted as the page's article.
var articleTypes = []string{"Article", "NewsArticle", "BlogPosting"}

// jsonKind discriminates jsonValue.
type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonScalar
	jsonList
	jsonMapping
)

// jsonValue is a decoded structured-data value. Exactly one of scalar,
// list, or mapping is meaningful, selected by kind.
type jsonValue struct {
	kind    jsonKind
	scalar  string
	list    []jsonValue
	mapping map[string]jsonValue
	raw     map[string]any
}

// newJSONValue converts the output of encoding/json into a jsonValue.
func newJSONValue(v any) jsonValue {
	switch t := v.(type) {
	case nil:
		return jsonValue{kind: jsonNull}
	case string:
		return jsonValue{kind: jsonScalar, scalar: t}
	case float64:
		return jsonValue{kind: jsonScalar, scalar: strconv.FormatFloat(t, 'f', -1, 64)}
	case bool:
		return jsonValue{kind: jsonScalar, scalar: strconv.FormatBool(t)}
	case []any:
		list := make([]jsonValue, 0, len(t))
		for _, item := range t {
			list = append(list, newJSONValue(item))
		}
		return jsonValue{kind: jsonList, list: list}
	case map[string]any:
		m := make(map[string]jsonValue, len(t))
		for k, item := range t {
			m[k] = newJSONValue(item)
		}
		return jsonValue{kind: jsonMapping, mapping: m, raw: t}
	default:
		return jsonValue{kind: jsonNull}
	}
}

// get returns the field key of a mapping, or a null value.
func (v jsonValue) get(key string) jsonValue {
	if v.kind != jsonMapping {
		return jsonValue{}
	}
	return v.mapping[key]
}

// text returns a string view of v: the scalar itself, the first non-empty
// element of a list, or a mapping's "@value" or "name".
func (v jsonValue) text() string {
	switch v.kind {
	case jsonScalar:
		return strings.TrimSpace(v.scalar)
	case jsonList:
		for _, item := range v.list {
			if s := item.text(); s != "" {
				return s
			}
		}
		return ""
	case jsonMapping:
		if s := v.get("@value").text(); s != "" {
			return s
		}
		return v.get("name").text()
	case jsonNull:
		return ""
	}
	return ""
}

// url returns a URL view of v: the scalar itself, the first usable element
// of a list, or the first usable URL-bearing field of a mapping.
func (v jsonValue) url() string {
	switch v.kind {
	case jsonScalar:
		return strings.TrimSpace(v.scalar)
	case jsonList:
		for _, item := range v.list {
			if u := item.url(); u != "" {
				return u
			}
		}
		return ""
	case jsonMapping:
		for _, key := range []string{"url", "contentUrl", "src", "href", "content"} {
			if u := v.get(key).url(); u != "" {
				return u
			}
		}
		return ""
	case jsonNull:
		return ""
	}
	return ""
}

// types returns the values of "@type", which may be a string or a list.
func (v jsonValue) types() []string {
	t := v.get("@type")
	switch t.kind {
	case jsonScalar:
		return []string{t.scalar}
	case jsonList:
		out := make([]string, 0, len(t.list))
		for _, item := range t.list {
			if item.kind == jsonScalar {
				out = append(out, item.scalar)
			}
		}
		return out
	case jsonNull, jsonMapping:
		return nil
	}
	return nil
}

// isArticle reports whether v is a mapping typed as an article.
func (v jsonValue) isArticle() bool {
	if v.kind != jsonMapping {
		return false
	}
	for _, t := range v.types() {
		if slices.Contains(articleTypes, t) {
			return true
		}
	}
	return false
}

// findArticle searches v, its list elements, and any "@graph" wrapper for
// the first article object.
func findArticle(v jsonValue) (jsonValue, bool) {
	switch v.kind {
	case jsonMapping:
		if v.isArticle() {
			return v, true
		}
		return findArticle(v.get("@graph"))
	case jsonList:
		for _, item := range v.list {
			if a, ok := findArticle(item); ok {
				return a, true
			}
		}
	case jsonNull, jsonScalar:
	}
	return jsonValue{}, false
}

// decodeJSONLD decodes one structured-data block, retrying once with
// trailing commas removed.
func decodeJSONLD(raw string) (jsonValue, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return jsonValue{}, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		repaired := trailingComma.ReplaceAllString(raw, "$1")
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return jsonValue{}, false
		}
	}
	return newJSONValue(v), true
}

// ParseSchema returns the first article object found in the page's
// structured-data blocks. Malformed blocks are skipped. Returns nil when
// no article object exists.
func ParseSchema(doc *goquery.Document) map[string]any {
	v, ok := parseSchema(doc)
	if !ok {
		return nil
	}
	return v.raw
}

func parseSchema(doc *goquery.Document) (jsonValue, bool) {
	var found jsonValue
	ok := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, decoded := decodeJSONLD(s.Text())
		if !decoded {
			return true
		}
		found, ok = findArticle(v)
		return !ok
	})
	return found, ok
}
