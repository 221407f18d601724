package course

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the set of courses available to the player: the built-in seed
// plus any course files found on disk.
type Catalog struct {
	courses []Course
	byID    map[string]int
}

// NewCatalog creates a catalog from the built-in courses and, if dir is
// non-empty, every *.yaml, *.yml and *.json file inside it. A file course
// with the same ID as a built-in one replaces it.
func NewCatalog(dir string) (*Catalog, error) {
	cat := &Catalog{byID: make(map[string]int)}
	for _, c := range seedCourses() {
		cat.add(c)
	}

	if dir == "" {
		return cat, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("read course dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isCourseFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		cat.add(*c)
	}
	return cat, nil
}

// All returns every course in catalog order.
func (cat *Catalog) All() []Course {
	out := make([]Course, len(cat.courses))
	copy(out, cat.courses)
	return out
}

// Get returns a private copy of the course with the given ID.
func (cat *Catalog) Get(id string) (*Course, error) {
	i, ok := cat.byID[id]
	if !ok {
		return nil, fmt.Errorf("course %q: %w", id, ErrNotFound)
	}
	return cat.courses[i].Clone(), nil
}

// Default returns the first course in the catalog.
func (cat *Catalog) Default() *Course {
	return cat.courses[0].Clone()
}

func (cat *Catalog) add(c Course) {
	if i, ok := cat.byID[c.ID]; ok {
		cat.courses[i] = c
		return
	}
	cat.byID[c.ID] = len(cat.courses)
	cat.courses = append(cat.courses, c)
}

// LoadFile reads, schema-checks and validates a single course file.
func LoadFile(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course file: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes course data. ext selects the format: ".json" for JSON,
// anything else is read as YAML.
func Parse(data []byte, ext string) (*Course, error) {
	var doc any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	// Normalize through JSON so the schema sees float64 numbers and
	// string-keyed objects regardless of the source format.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize course document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("normalize course document: %w", err)
	}

	if err := validateDocument(normalized); err != nil {
		return nil, err
	}

	var c Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func isCourseFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
