package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptySource  = errors.New("no catalog source provided")
	ErrNotAnObject  = errors.New("catalog document must be an object of categories")
	ErrInvalidEntry = errors.New("catalog entry must be an object")
)

// itemNamespace seeds the deterministic ids given to entries that have none
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("food-recommender/catalog"))

// Catalog is the flattened, read-only list of food items.
// It is built once at startup and safe for concurrent use.
type Catalog struct {
	items      []models.FoodItem
	categories []string
}

// Load reads a catalog from a filesystem path or an http(s) URL.
// Sources ending in .gz are decompressed.
func Load(ctx context.Context, source string) (*Catalog, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchURL(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", source, err)
	}

	if strings.HasSuffix(source, ".gz") {
		if data, err = gunzip(data); err != nil {
			return nil, fmt.Errorf("failed to decompress catalog %s: %w", source, err)
		}
	}

	return Parse(data)
}

// fetchURL downloads a catalog document
func fetchURL(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func gunzip(data []byte) ([]byte, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	return io.ReadAll(gzReader)
}

// Parse builds a catalog from a JSON or YAML document whose top-level keys are
// category names. Category order and list order are preserved. Categories whose
// value is not a list are skipped. A repeated category keeps its first position
// and its last value.
func Parse(data []byte) (*Catalog, error) {
	var (
		s   *sections
		err error
	)
	if trimmed := bytes.TrimLeft(data, jsonSpace); len(trimmed) > 0 && trimmed[0] == '{' {
		s, err = parseJSON(data)
	} else {
		s, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	for _, category := range s.order {
		list := s.lists[category]
		if list == nil {
			continue
		}

		entries, err := list()
		if err != nil {
			return nil, fmt.Errorf("category %q %w", category, err)
		}

		c.categories = append(c.categories, category)
		for _, fields := range entries {
			c.items = append(c.items, newItem(category, fields))
		}
	}

	return c, nil
}

const jsonSpace = " \t\r\n"

// listFunc decodes the entries of one category list
type listFunc func() ([]map[string]any, error)

// sections holds the top-level categories in first-seen order.
// A nil listFunc marks a category whose value is not a list.
type sections struct {
	order []string
	lists map[string]listFunc
}

func (s *sections) set(category string, list listFunc) {
	if s.lists == nil {
		s.lists = make(map[string]listFunc)
	}
	if _, seen := s.lists[category]; !seen {
		s.order = append(s.order, category)
	}
	s.lists[category] = list
}

// parseJSON walks the top-level object token by token so key order survives
func parseJSON(data []byte) (*sections, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotAnObject
	}

	s := &sections{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		category, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}

		if trimmed := bytes.TrimLeft(raw, jsonSpace); len(trimmed) == 0 || trimmed[0] != '[' {
			s.set(category, nil)
			continue
		}
		s.set(category, func() ([]map[string]any, error) {
			return decodeJSONList(raw)
		})
	}

	// Closing brace, then nothing else
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse catalog: unexpected data after top-level object")
	}

	return s, nil
}

func decodeJSONList(raw json.RawMessage) ([]map[string]any, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}

	entries := make([]map[string]any, 0, len(elems))
	for i, elem := range elems {
		if trimmed := bytes.TrimLeft(elem, jsonSpace); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
		}
		fields := make(map[string]any)
		if err := json.Unmarshal(elem, &fields); err != nil {
			return nil, fmt.Errorf("entry %d: failed to decode entry: %w", i, err)
		}
		entries = append(entries, fields)
	}
	return entries, nil
}

func parseYAML(data []byte) (*sections, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNotAnObject
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotAnObject
	}

	s := &sections{}
	// Mapping node content alternates key, value
	for i := 0; i+1 < len(root.Content); i += 2 {
		category := root.Content[i].Value
		list := root.Content[i+1]
		if list.Kind != yaml.SequenceNode {
			s.set(category, nil)
			continue
		}
		s.set(category, func() ([]map[string]any, error) {
			return decodeYAMLList(list)
		})
	}

	return s, nil
}

func decodeYAMLList(list *yaml.Node) ([]map[string]any, error) {
	entries := make([]map[string]any, 0, len(list.Content))
	for i, node := range list.Content {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
		}
		fields := make(map[string]any)
		if err := node.Decode(&fields); err != nil {
			return nil, fmt.Errorf("entry %d: failed to decode entry: %w", i, err)
		}
		entries = append(entries, fields)
	}
	return entries, nil
}

func newItem(category string, fields map[string]any) models.FoodItem {
	name, _ := fields[models.FieldName].(string)
	delete(fields, models.FieldName)
	delete(fields, models.FieldCategory)
	delete(fields, models.FieldOrderLink)

	if _, ok := fields["id"]; !ok {
		fields["id"] = ItemID(category, name)
	}

	return models.FoodItem{
		Name:     name,
		Category: category,
		Fields:   fields,
	}
}

// ItemID returns the deterministic id assigned to entries without one
func ItemID(category, name string) string {
	return uuid.NewSHA1(itemNamespace, []byte(category+"/"+name)).String()
}

// Items returns a copy of the flattened item list in catalog order
func (c *Catalog) Items() []models.FoodItem {
	items := make([]models.FoodItem, len(c.items))
	copy(items, c.items)
	return items
}

// Categories returns the list-valued category names in document order
func (c *Catalog) Categories() []string {
	categories := make([]string, len(c.categories))
	copy(categories, c.categories)
	return categories
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}
