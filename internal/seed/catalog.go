package seed

import (
	"fmt"
	"os"

	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"gopkg.in/yaml.v3"
)

// defaultCatalog is the built-in skill directory used when no catalog file is
// configured. A custom catalog yaml has the shape:
//
//	skills:
//	  - guitar
//	  - spanish tutoring
var defaultCatalog = []string{
	"guitar", "piano", "spanish tutoring", "french tutoring", "yoga",
	"photography", "cooking", "baking", "woodworking", "gardening",
	"web development", "graphic design", "video editing", "public speaking",
	"chess", "swimming", "running coaching", "knitting", "pottery",
	"car maintenance",
}

type catalogFile struct {
	Skills []string `yaml:"skills"`
}

// LoadCatalog reads skill names from a yaml file. An empty path returns the
// built-in catalog. Names are normalized and invalid entries are rejected so
// a bad catalog fails loudly instead of seeding garbage.
func LoadCatalog(path string) ([]string, error) {
	if path == "" {
		return defaultCatalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skill catalog: %w", err)
	}
	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("skill catalog %s contains no skills", path)
	}

	names := make([]string, 0, len(file.Skills))
	seen := make(map[string]struct{}, len(file.Skills))
	for _, raw := range file.Skills {
		name := repository.NormalizeSkillName(raw)
		if err := validation.ValidateSkillName(name); err != nil {
			return nil, fmt.Errorf("skill catalog entry %q: %w", raw, err)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
