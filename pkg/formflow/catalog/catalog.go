package catalog

import (
	"sort"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Metadata describes the form a catalog belongs to.
type Metadata struct {
	FormName           string              `json:"form_name"`
	FormVersion        string              `json:"form_version"`
	SupportedLanguages []string            `json:"supported_languages"`
	DefaultLanguage    string              `json:"default_language"`
	Description        types.LocalisedText `json:"description,omitempty"`
}

// Catalog is the immutable, ordered collection of question definitions.
// Built once at startup; all lookups afterwards are read-only.
type Catalog struct {
	meta    Metadata
	byID    map[string]*types.QuestionDefinition
	ordered []*types.QuestionDefinition
}

// New validates the definitions and builds a catalog from them. The returned
// order is stable: ascending by Order, ties broken by the position in defs.
func New(meta Metadata, defs []types.QuestionDefinition) (*Catalog, error) {
	if problems := validateDefinitions(defs); len(problems) > 0 {
		return nil, &types.ConfigurationError{Problems: problems}
	}

	c := &Catalog{
		meta:    meta,
		byID:    make(map[string]*types.QuestionDefinition, len(defs)),
		ordered: make([]*types.QuestionDefinition, 0, len(defs)),
	}
	for i := range defs {
		q := defs[i]
		c.byID[q.QuestionID] = &q
		c.ordered = append(c.ordered, &q)
	}
	sort.SliceStable(c.ordered, func(i, j int) bool {
		return c.ordered[i].Order < c.ordered[j].Order
	})
	return c, nil
}

func (c *Catalog) Metadata() Metadata {
	return c.meta
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (*types.QuestionDefinition, error) {
	q, ok := c.byID[id]
	if !ok {
		return nil, &types.NotFoundError{Kind: "question", Key: id}
	}
	return q, nil
}

// Ordered returns all questions sorted by ascending Order.
func (c *Catalog) Ordered() []*types.QuestionDefinition {
	return c.ordered
}

// Size returns the number of questions in the catalog.
func (c *Catalog) Size() int {
	return len(c.ordered)
}

// After returns the ordered questions strictly after the question with id,
// i.e. the candidates for the next step of the form.
func (c *Catalog) After(id string) ([]*types.QuestionDefinition, error) {
	if _, ok := c.byID[id]; !ok {
		return nil, &types.NotFoundError{Kind: "question", Key: id}
	}
	for i, q := range c.ordered {
		if q.QuestionID == id {
			return c.ordered[i+1:], nil
		}
	}
	return nil, nil
}
