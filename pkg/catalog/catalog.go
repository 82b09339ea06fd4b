package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/esamadhan/volunteer-api/pkg/models"
	"gopkg.in/yaml.v3"
)

// ErrCategoryNotFound is returned when a category identifier is not in the catalog
var ErrCategoryNotFound = errors.New("category not found")

// Catalog is the read-only set of volunteer task categories.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	order      []string
	categories map[string]models.TaskCategory
}

type catalogFile struct {
	Categories []models.TaskCategory `yaml:"categories"`
}

// New builds a catalog from categories, keeping their order
func New(categories []models.TaskCategory) (*Catalog, error) {
	c := &Catalog{
		categories: make(map[string]models.TaskCategory, len(categories)),
	}
	taskIDs := make(map[string]string)
	for _, cat := range categories {
		if cat.ID == "" {
			return nil, errors.New("category id is required")
		}
		if _, dup := c.categories[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id: %s", cat.ID)
		}
		for _, t := range cat.Tasks {
			if t.ID == "" {
				return nil, fmt.Errorf("category %s: task id is required", cat.ID)
			}
			if owner, dup := taskIDs[t.ID]; dup {
				return nil, fmt.Errorf("duplicate task id %s in %s and %s", t.ID, owner, cat.ID)
			}
			if !t.Difficulty.Valid() {
				return nil, fmt.Errorf("task %s: unknown difficulty %q", t.ID, t.Difficulty)
			}
			taskIDs[t.ID] = cat.ID
		}
		c.order = append(c.order, cat.ID)
		c.categories[cat.ID] = copyCategory(cat)
	}
	return c, nil
}

// LoadFile reads a YAML catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}
	return New(f.Categories)
}

// Lookup returns the category with the given id
func (c *Catalog) Lookup(id string) (models.TaskCategory, error) {
	cat, ok := c.categories[id]
	if !ok {
		return models.TaskCategory{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return copyCategory(cat), nil
}

// Categories returns every category in catalog order
func (c *Catalog) Categories() []models.TaskCategory {
	out := make([]models.TaskCategory, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyCategory(c.categories[id]))
	}
	return out
}

// Task returns a task of the given category, or false if either is unknown
func (c *Catalog) Task(categoryID, taskID string) (models.Task, bool) {
	cat, ok := c.categories[categoryID]
	if !ok {
		return models.Task{}, false
	}
	for _, t := range cat.Tasks {
		if t.ID == taskID {
			return copyTask(t), true
		}
	}
	return models.Task{}, false
}

// Len returns the number of categories
func (c *Catalog) Len() int {
	return len(c.order)
}

func copyCategory(cat models.TaskCategory) models.TaskCategory {
	out := cat
	out.Tasks = make([]models.Task, len(cat.Tasks))
	for i, t := range cat.Tasks {
		out.Tasks[i] = copyTask(t)
	}
	return out
}

func copyTask(t models.Task) models.Task {
	out := t
	out.RequiredSkills = append([]string(nil), t.RequiredSkills...)
	return out
}
