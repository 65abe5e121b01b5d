package bundle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-contractgen/pkg/model"
)

// ErrTemplateNotFound is returned by Get for an unknown template id.
var ErrTemplateNotFound = errors.New("bundle: template not found")

// Catalog holds templates by id. It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]model.Template
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: make(map[string]model.Template)}
}

// Add stores a template. Ids must be unique within the catalog.
func (c *Catalog) Add(tpl model.Template) error {
	id := strings.TrimSpace(tpl.ID)
	if id == "" {
		return fmt.Errorf("bundle: template id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.templates[id]; ok {
		return fmt.Errorf("bundle: duplicate template %q (%s, %s)", id, existing.Source, tpl.Source)
	}
	c.templates[id] = tpl
	return nil
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (model.Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tpl, ok := c.templates[strings.TrimSpace(id)]
	if !ok {
		return model.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return tpl, nil
}

// List returns every template ordered by id.
func (c *Catalog) List() []model.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Template, 0, len(c.templates))
	for _, tpl := range c.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports how many templates the catalog holds.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Search fuzzy-matches query against each template's name, description, id
// and tags. Results are ordered best match first. An empty query returns
// List().
func (c *Catalog) Search(query string) []model.Template {
	all := c.List()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	haystack := make([]string, len(all))
	for i, tpl := range all {
		haystack[i] = strings.ToLower(strings.Join([]string{
			tpl.Name, tpl.Description, tpl.ID, strings.Join(tpl.Tags, " "),
		}, " "))
	}

	matches := fuzzy.Find(strings.ToLower(query), haystack)
	out := make([]model.Template, 0, len(matches))
	for _, match := range matches {
		out = append(out, all[match.Index])
	}
	return out
}
