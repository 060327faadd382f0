// Package seed provides the bundled catalog that is served when the store
// holds no categories or prompts.
package seed

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type seedCategory struct {
	domain.Category `yaml:",inline"`
	Files           []string `yaml:"files"`
}

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Hidden     []string       `yaml:"hidden"`
}

// Dataset is the parsed seed.
type Dataset struct {
	Categories []domain.Category
	Prompts    []domain.Prompt
}

var load = sync.OnceValues(func() (Dataset, error) {
	return Parse(catalogYAML)
})

// Load returns a copy of the bundled dataset.
func Load() (Dataset, error) {
	ds, err := load()
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{
		Categories: slices.Clone(ds.Categories),
		Prompts:    slices.Clone(ds.Prompts),
	}, nil
}

// MustLoad is Load for callers that treat a broken embedded file as a
// programming error.
func MustLoad() Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}

// Parse builds a dataset from a seed document. Prompts are generated from the
// per-category file lists; their tag is derived from the category name.
func Parse(data []byte) (Dataset, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Dataset{}, fmt.Errorf("seed: parse: %w", err)
	}

	var ds Dataset
	for _, c := range f.Categories {
		if c.ID == "" || c.Name == "" {
			return Dataset{}, fmt.Errorf("seed: category %q: id and name are required", c.Name)
		}
		ds.Categories = append(ds.Categories, c.Category)

		tag := TagFor(c.Name)
		for _, file := range c.Files {
			name := strings.Replace(file, ".md", "", 1)
			ds.Prompts = append(ds.Prompts, domain.Prompt{
				ID:          c.Name + "-" + file,
				Name:        name,
				Description: fmt.Sprintf("Premium %s implementation for advanced AI model orchestration.", strings.ToLower(tag)),
				Category:    c.Name,
				Path:        "prompts/" + c.Name + "/" + file,
				Tag:         tag,
				IsHidden:    slices.Contains(f.Hidden, name),
			})
		}
	}
	return ds, nil
}

// TagFor derives a prompt tag from its category name.
func TagFor(category string) string {
	switch {
	case strings.Contains(category, "Jailbreak"):
		return "Jailbreak"
	case strings.Contains(category, "Leak"):
		return "Leak"
	case category == "Grimoire":
		return "Grimoire"
	case strings.Contains(category, "Super"):
		return "Super"
	case strings.Contains(category, "Security"):
		return "Security"
	case strings.Contains(category, "Ultra"):
		return "Ultra"
	default:
		return "Prompt"
	}
}
