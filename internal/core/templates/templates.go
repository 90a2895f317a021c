// Package templates holds the built-in survey templates creators start from.
package templates

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

//go:embed templates.yaml
var catalogYAML []byte

// Template is a read-only starting point for a draft.
type Template struct {
	ID             string            `json:"id" yaml:"id"`
	Title          string            `json:"title" yaml:"title"`
	Description    string            `json:"description" yaml:"description"`
	CompletionRate string            `json:"completionRate" yaml:"completionRate"`
	EstimatedTime  string            `json:"estimatedTime" yaml:"estimatedTime"`
	QuestionCount  int               `json:"questionCount" yaml:"-"`
	Questions      []domain.Question `json:"questions" yaml:"questions"`
}

// QuestionList returns a copy of the template questions so callers cannot
// mutate the shared catalog.
func (t Template) QuestionList() []domain.Question {
	return domain.CloneQuestions(t.Questions)
}

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// Parse builds a catalog from YAML and validates every template question.
func Parse(data []byte) (*Catalog, error) {
	var list []Template
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(list))}
	for i, t := range list {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		if err := domain.ValidateQuestions(t.Questions); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		t.QuestionCount = len(t.Questions)
		c.byID[t.ID] = i
		c.templates = append(c.templates, t)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. The embedded file is validated by
// tests, so a parse failure here is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// All returns deep copies of every template in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.clone()
	}
	return out
}

// Get returns a deep copy of the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i].clone(), true
}

func (t Template) clone() Template {
	t.Questions = domain.CloneQuestions(t.Questions)
	return t
}
