package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads one custom rule group from a YAML file. The group is
// validated but not compiled; Resolve compiles the full catalogue.
func LoadFile(path string) (Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Group{}, fmt.Errorf("read rule group %s: %w", path, err)
	}
	var group Group
	if err := yaml.Unmarshal(data, &group); err != nil {
		return Group{}, fmt.Errorf("parse rule group %s: %w", path, err)
	}
	group.Source = SourceCustom
	if err := ValidateGroup(group); err != nil {
		return Group{}, fmt.Errorf("%s: %w", path, err)
	}
	return group, nil
}

// LoadDir loads every *.yaml/*.yml rule group in dir, sorted by file name so
// custom catalogue order is deterministic. A missing directory is not an
// error; an invalid file is.
func LoadDir(dir string) ([]Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rules dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		group, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
