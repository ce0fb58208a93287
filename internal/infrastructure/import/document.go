// Package catalogimport parses supplier catalog documents into a validated
// structure ready to be written by the import service.
package catalogimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Document is a parsed catalog upload
type Document struct {
	Shop       string
	Categories []Category
	Items      []Item
}

// Category is a category declared by the document
type Category struct {
	// SupplierID is the supplier's own identifier, empty when not given
	SupplierID string
	Name       string
}

// Item is one product listing of the document
type Item struct {
	Name string
	// CategoryIndex points into Document.Categories
	CategoryIndex int
	Price         decimal.Decimal
	PriceRRC      decimal.Decimal
	Quantity      int
	Parameters    []Parameter
}

// Parameter is a name/value attribute of an item
type Parameter struct {
	Name  string
	Value string
}

// Parser decodes catalog documents
type Parser struct {
	maxItems  int
	maxErrors int
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithMaxItems caps the number of items accepted in one document
func WithMaxItems(n int) ParserOption {
	return func(p *Parser) {
		p.maxItems = n
	}
}

// WithMaxErrors caps the number of field errors reported
func WithMaxErrors(n int) ParserOption {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// NewParser creates a new Parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		maxItems:  10000,
		maxErrors: 100,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// keyAliases lists the accepted spellings of each top-level key
var keyAliases = map[string][]string{
	"shop":       {"shop"},
	"categories": {"categories", "category"},
	"items":      {"items", "item", "goods"},
}

// Parse decodes data. Missing top-level keys are reported before anything
// else is looked at, so a document without shop, categories or items never
// reaches the store.
func (p *Parser) Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return nil, ErrMalformedPayload.WithMessage("Import document must be a JSON object")
	}

	errs := NewErrorCollection(p.maxErrors)
	sections := make(map[string]json.RawMessage, len(keyAliases))
	for _, key := range []string{"shop", "categories", "items"} {
		raw, ok := lookup(top, keyAliases[key])
		if !ok {
			errs.AddMissing(key)
			continue
		}
		sections[key] = raw
	}
	if errs.HasErrors() {
		return nil, errs.DomainError()
	}

	doc := &Document{}
	if shop, ok := scalarText(sections["shop"]); ok && isJSONString(sections["shop"]) {
		doc.Shop = strings.TrimSpace(shop)
		if doc.Shop == "" {
			errs.AddMissing("shop")
		}
	} else {
		errs.AddMalformed("shop", "Expected a string")
	}

	doc.Categories = p.parseCategories(sections["categories"], errs)
	doc.Items = p.parseItems(sections["items"], doc.Categories, errs)

	if errs.HasErrors() {
		return nil, errs.DomainError()
	}
	return doc, nil
}

func (p *Parser) parseCategories(raw json.RawMessage, errs *ErrorCollection) []Category {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		errs.AddMalformed("categories", "Expected an array of objects")
		return nil
	}

	categories := make([]Category, 0, len(entries))
	seenIDs := make(map[string]bool, len(entries))
	for i, entry := range entries {
		path := fmt.Sprintf("categories[%d]", i)
		var c Category

		name, ok := entry["name"]
		switch {
		case !ok || isNull(name):
			errs.AddMissing(path + ".name")
		case !isJSONString(name):
			errs.AddMalformed(path+".name", "Expected a string")
		default:
			c.Name, _ = scalarText(name)
			c.Name = strings.TrimSpace(c.Name)
		}

		if id, ok := entry["id"]; ok && !isNull(id) {
			text, ok := scalarText(id)
			if !ok || strings.TrimSpace(text) == "" {
				errs.AddMalformed(path+".id", "Expected a number or string")
			} else {
				c.SupplierID = strings.TrimSpace(text)
				if seenIDs[c.SupplierID] {
					errs.AddMalformed(path+".id", fmt.Sprintf("Duplicate category id %s", c.SupplierID))
				}
				seenIDs[c.SupplierID] = true
			}
		}
		categories = append(categories, c)
	}
	return categories
}

func (p *Parser) parseItems(raw json.RawMessage, categories []Category, errs *ErrorCollection) []Item {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		errs.AddMalformed("items", "Expected an array of objects")
		return nil
	}
	if p.maxItems > 0 && len(entries) > p.maxItems {
		errs.AddMalformed("items", fmt.Sprintf("At most %d items can be imported at once", p.maxItems))
		return nil
	}

	resolve := categoryResolver(categories)
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		path := fmt.Sprintf("items[%d]", i)
		item := Item{CategoryIndex: -1}

		if text, ok := requiredScalar(entry, "name", path, errs); ok {
			item.Name = strings.TrimSpace(text)
		}
		if text, ok := requiredScalar(entry, "category", path, errs); ok {
			idx, found := resolve(strings.TrimSpace(text))
			if !found {
				errs.AddMalformed(path+".category",
					fmt.Sprintf("Category %s is not declared in the document", text))
			}
			item.CategoryIndex = idx
		}
		if text, ok := requiredScalar(entry, "price", path, errs); ok {
			item.Price = parseDecimal(text, path+".price", errs)
		}
		if text, ok := requiredScalar(entry, "price_rrc", path, errs); ok {
			item.PriceRRC = parseDecimal(text, path+".price_rrc", errs)
		}
		if text, ok := requiredScalar(entry, "quantity", path, errs); ok {
			q, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				errs.AddMalformed(path+".quantity", "Expected an integer")
			}
			item.Quantity = q
		}
		if params, ok := entry["parameters"]; ok && !isNull(params) {
			item.Parameters = parseParameters(params, path+".parameters", errs)
		}

		items = append(items, item)
	}
	return items
}

// categoryResolver maps an item's category reference to an index. When the
// document assigns supplier ids the reference is matched against them,
// otherwise it is the 1-based position in the categories array.
func categoryResolver(categories []Category) func(ref string) (int, bool) {
	byID := make(map[string]int)
	for i, c := range categories {
		if c.SupplierID != "" {
			byID[c.SupplierID] = i
		}
	}
	if len(byID) > 0 {
		return func(ref string) (int, bool) {
			idx, ok := byID[ref]
			if !ok {
				return -1, false
			}
			return idx, true
		}
	}
	return func(ref string) (int, bool) {
		pos, err := strconv.Atoi(ref)
		if err != nil || pos < 1 || pos > len(categories) {
			return -1, false
		}
		return pos - 1, true
	}
}

// parseParameters accepts {"weight": "1kg", ...} or [{"weight": "1kg"}, ...].
// Keys of one object are taken in sorted order; a later duplicate name wins.
func parseParameters(raw json.RawMessage, path string, errs *ErrorCollection) []Parameter {
	var objects []map[string]json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			errs.AddMalformed(path, "Expected an object of name/value pairs")
			return nil
		}
		objects = append(objects, obj)
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &objects); err != nil {
			errs.AddMalformed(path, "Expected an array of name/value objects")
			return nil
		}
	default:
		errs.AddMalformed(path, "Expected an object or an array")
		return nil
	}

	params := make([]Parameter, 0)
	index := make(map[string]int)
	for _, obj := range objects {
		names := make([]string, 0, len(obj))
		for name := range obj {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value, ok := scalarText(obj[name])
			if !ok {
				errs.AddMalformed(path+"."+name, "Expected a scalar value")
				continue
			}
			name = strings.TrimSpace(name)
			if i, dup := index[name]; dup {
				params[i].Value = value
				continue
			}
			index[name] = len(params)
			params = append(params, Parameter{Name: name, Value: value})
		}
	}
	return params
}

func requiredScalar(entry map[string]json.RawMessage, key, path string, errs *ErrorCollection) (string, bool) {
	raw, ok := entry[key]
	if !ok || isNull(raw) {
		errs.AddMissing(path + "." + key)
		return "", false
	}
	text, ok := scalarText(raw)
	if !ok {
		errs.AddMalformed(path+"."+key, "Expected a number or string")
		return "", false
	}
	return text, true
}

func parseDecimal(text, path string, errs *ErrorCollection) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		errs.AddMalformed(path, "Expected a decimal number")
		return decimal.Zero
	}
	return d
}

// scalarText returns the textual form of a JSON string, number or boolean
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case '{', '[', 'n':
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func lookup(top map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if raw, ok := top[k]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}
