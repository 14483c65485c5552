package classify

import (
	"fmt"
	"os"

	"scrapper/core/pipeline"
	"scrapper/feature/scrapping/models"

	"gopkg.in/yaml.v3"
)

// Lists holds the static allow and deny lists per candidate kind.
type Lists struct {
	Allow map[models.EntityKind][]int `yaml:"allow"`
	Deny  map[models.EntityKind][]int `yaml:"deny"`
}

// ListsFromConfig builds the lists from configuration and its optional file.
func ListsFromConfig(cfg pipeline.Classifier) (Lists, error) {
	lists := Lists{
		Allow: map[models.EntityKind][]int{
			models.KindResource:   cfg.ResourceAllow,
			models.KindConsumable: cfg.ConsumableAllow,
		},
		Deny: map[models.EntityKind][]int{
			models.KindResource:   cfg.ResourceDeny,
			models.KindConsumable: cfg.ConsumableDeny,
		},
	}
	if cfg.ListsFile == "" {
		return lists, nil
	}

	fromFile, err := LoadListsFile(cfg.ListsFile)
	if err != nil {
		return Lists{}, err
	}
	lists.merge(fromFile)
	return lists, nil
}

// LoadListsFile reads lists from YAML:
//
//	allow:
//	  resource: [15, 35]
//	deny:
//	  resource: [16]
func LoadListsFile(path string) (Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lists{}, fmt.Errorf("failed to read classifier lists: %w", err)
	}
	var lists Lists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return Lists{}, fmt.Errorf("failed to parse classifier lists: %w", err)
	}
	for kind := range lists.Allow {
		if !isCandidate(kind) {
			return Lists{}, fmt.Errorf("classifier lists: %q is not a classifiable kind", kind)
		}
	}
	for kind := range lists.Deny {
		if !isCandidate(kind) {
			return Lists{}, fmt.Errorf("classifier lists: %q is not a classifiable kind", kind)
		}
	}
	return lists, nil
}

func (l *Lists) merge(other Lists) {
	if l.Allow == nil {
		l.Allow = map[models.EntityKind][]int{}
	}
	if l.Deny == nil {
		l.Deny = map[models.EntityKind][]int{}
	}
	for k, ids := range other.Allow {
		l.Allow[k] = append(l.Allow[k], ids...)
	}
	for k, ids := range other.Deny {
		l.Deny[k] = append(l.Deny[k], ids...)
	}
}
