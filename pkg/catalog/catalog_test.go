package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookup(t *testing.T) {
	c := Default()

	cat, err := c.Lookup("infrastructure")
	require.NoError(t, err)
	assert.Equal(t, "Infrastructure", cat.Name)
	require.NotEmpty(t, cat.Tasks)
	assert.Equal(t, "INF-001", cat.Tasks[0].ID)
	assert.Equal(t, "Street Light Repair", cat.Tasks[0].Title)

	task, ok := c.Task("infrastructure", "INF-001")
	require.True(t, ok)
	assert.Equal(t, models.DifficultyMedium, task.Difficulty)

	_, ok = c.Task("environment", "INF-001")
	assert.False(t, ok, "task must belong to the requested category")
}

func TestLookupUnknownCategory(t *testing.T) {
	c := Default()
	for _, id := range []string{"", "Infrastructure", "roads", "infrastructure "} {
		_, err := c.Lookup(id)
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound for %q, got %v", id, err)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Default()

	cat, err := c.Lookup("infrastructure")
	require.NoError(t, err)
	cat.Tasks[0].Title = "changed"
	cat.Tasks[0].RequiredSkills[0] = "changed"

	again, err := c.Lookup("infrastructure")
	require.NoError(t, err)
	assert.Equal(t, "Street Light Repair", again.Tasks[0].Title)
	assert.Equal(t, "Electrical", again.Tasks[0].RequiredSkills[0])
}

func TestCategoriesOrder(t *testing.T) {
	var ids []string
	for _, cat := range Default().Categories() {
		ids = append(ids, cat.ID)
	}
	assert.Equal(t, []string{"infrastructure", "environment", "community", "safety"}, ids)
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name       string
		categories []models.TaskCategory
	}{
		{
			name:       "missing category id",
			categories: []models.TaskCategory{{Name: "x"}},
		},
		{
			name: "duplicate category",
			categories: []models.TaskCategory{
				{ID: "a"},
				{ID: "a"},
			},
		},
		{
			name: "duplicate task across categories",
			categories: []models.TaskCategory{
				{ID: "a", Tasks: []models.Task{{ID: "T-1", Difficulty: models.DifficultyEasy}}},
				{ID: "b", Tasks: []models.Task{{ID: "T-1", Difficulty: models.DifficultyEasy}}},
			},
		},
		{
			name: "unknown difficulty",
			categories: []models.TaskCategory{
				{ID: "a", Tasks: []models.Task{{ID: "T-1", Difficulty: "Extreme"}}},
			},
		},
		{
			name: "missing task id",
			categories: []models.TaskCategory{
				{ID: "a", Tasks: []models.Task{{Difficulty: models.DifficultyEasy}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	doc := `
categories:
  - id: parks
    name: Parks
    icon: "🌿"
    description: Park upkeep
    tasks:
      - id: PRK-001
        title: Bench Painting
        location: City Park
        duration: 2 hours
        difficulty: Easy
        required_skills: [Painting]
        tools_provided: true
        compensation: Certificate
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	task, ok := c.Task("parks", "PRK-001")
	require.True(t, ok)
	assert.Equal(t, "Bench Painting", task.Title)
	assert.True(t, task.ToolsProvided)
	assert.Equal(t, []string{"Painting"}, task.RequiredSkills)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("categories: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("categories: [\n"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
