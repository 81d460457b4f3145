// Package skills provides the skill database and the rule-based extraction, normalization,
// gap analysis and recommendation logic built on it.
//
// Everything in this package is pure: a *Database is immutable once built and may be shared
// by any number of goroutines.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/skill-extractor/internal/schemas"
)

//go:embed default_skill_database.json
var defaultDatabase []byte

// SoftSkills is the category excluded from technical skill counts.
const SoftSkills = "soft_skills"

// Category is one named, ordered partition of the skill database.
type Category struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Tables holds the auxiliary lookup tables of a database.
type Tables struct {
	Abbreviations map[string]string   `json:"abbreviations,omitempty"`
	Synonyms      map[string][]string `json:"synonyms,omitempty"`
	Relationships map[string][]string `json:"relationships,omitempty"`
}

type databaseFile struct {
	Categories []Category `json:"categories"`
	Tables
}

// Database is the immutable skill reference data: ordered categories plus abbreviation,
// synonym and relationship tables.
type Database struct {
	categories []Category
	tables     Tables

	// lower-cased synonyms and version patterns, keyed by canonical skill
	lowerSynonyms map[string][]string
	versioned     map[string]*regexp.Regexp
	total         int
}

// Overview summarizes database contents.
type Overview struct {
	Categories    int `json:"categories"`
	Skills        int `json:"skills"`
	Abbreviations int `json:"abbreviations"`
	Synonyms      int `json:"synonyms"`
	Relationships int `json:"relationships"`
}

// DatabaseError reports a skill database that could not be read or violates its invariants.
type DatabaseError struct {
	Source string
	Reason string
	Cause  error
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill database %s: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("skill database %s: %s", e.Source, e.Reason)
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in database.
func Default() (*Database, error) {
	return parse("(embedded)", defaultDatabase)
}

// MustDefault returns the built-in database and panics if it is invalid.
func MustDefault() *Database {
	db, err := Default()
	if err != nil {
		panic(err)
	}
	return db
}

// LoadDatabase reads a JSON skill database from r.
func LoadDatabase(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DatabaseError{Source: "(reader)", Reason: "read failed", Cause: err}
	}
	return parse("(reader)", data)
}

// LoadDatabaseFile reads a JSON skill database from disk.
func LoadDatabaseFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DatabaseError{Source: path, Reason: "read failed", Cause: err}
	}
	return parse(path, data)
}

func parse(source string, data []byte) (*Database, error) {
	if err := schemas.Validate(schemas.SkillDatabase, data); err != nil {
		return nil, &DatabaseError{Source: source, Reason: "schema validation failed", Cause: err}
	}
	var f databaseFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &DatabaseError{Source: source, Reason: "invalid JSON", Cause: err}
	}
	db, err := NewDatabase(f.Categories, f.Tables)
	if err != nil {
		if dbErr, ok := err.(*DatabaseError); ok {
			dbErr.Source = source
		}
		return nil, err
	}
	return db, nil
}

// NewDatabase builds a database from ordered categories and lookup tables. Inputs are copied.
// Category names must be non-empty and unique, and a skill may appear only once across all
// categories.
func NewDatabase(categories []Category, tables Tables) (*Database, error) {
	db := &Database{
		categories:    make([]Category, 0, len(categories)),
		lowerSynonyms: make(map[string][]string),
		versioned:     make(map[string]*regexp.Regexp),
		tables: Tables{
			Abbreviations: make(map[string]string, len(tables.Abbreviations)),
			Synonyms:      make(map[string][]string, len(tables.Synonyms)),
			Relationships: make(map[string][]string, len(tables.Relationships)),
		},
	}

	seenCategory := make(map[string]bool)
	owner := make(map[string]string)
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, &DatabaseError{Source: "(memory)", Reason: "category with empty name"}
		}
		if seenCategory[c.Name] {
			return nil, &DatabaseError{Source: "(memory)", Reason: fmt.Sprintf("duplicate category %q", c.Name)}
		}
		seenCategory[c.Name] = true

		for _, skill := range c.Skills {
			if strings.TrimSpace(skill) == "" {
				return nil, &DatabaseError{Source: "(memory)", Reason: fmt.Sprintf("empty skill in category %q", c.Name)}
			}
			if prev, ok := owner[skill]; ok {
				return nil, &DatabaseError{
					Source: "(memory)",
					Reason: fmt.Sprintf("skill %q listed in both %q and %q", skill, prev, c.Name),
				}
			}
			owner[skill] = c.Name
			db.versioned[skill] = versionPattern(skill)
		}
		db.categories = append(db.categories, Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)})
		db.total += len(c.Skills)
	}

	for k, v := range tables.Abbreviations {
		db.tables.Abbreviations[k] = v
	}
	for k, v := range tables.Synonyms {
		db.tables.Synonyms[k] = append([]string(nil), v...)
		lowered := make([]string, len(v))
		for i, s := range v {
			lowered[i] = lower(s)
		}
		db.lowerSynonyms[k] = lowered
	}
	for k, v := range tables.Relationships {
		db.tables.Relationships[k] = append([]string(nil), v...)
	}

	return db, nil
}

// Categories returns the categories in declaration order.
func (db *Database) Categories() []Category {
	out := make([]Category, len(db.categories))
	for i, c := range db.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// CategoryNames returns category names in declaration order.
func (db *Database) CategoryNames() []string {
	names := make([]string, len(db.categories))
	for i, c := range db.categories {
		names[i] = c.Name
	}
	return names
}

// Skills returns the skills of one category and whether the category exists.
func (db *Database) Skills(category string) ([]string, bool) {
	for _, c := range db.categories {
		if c.Name == category {
			return append([]string(nil), c.Skills...), true
		}
	}
	return nil, false
}

// CategoryOf returns the category that declares skill.
func (db *Database) CategoryOf(skill string) (string, bool) {
	for _, c := range db.categories {
		for _, s := range c.Skills {
			if s == skill {
				return c.Name, true
			}
		}
	}
	return "", false
}

// Expand returns the full name for an abbreviation. Lookup is exact and case-sensitive.
func (db *Database) Expand(abbreviation string) (string, bool) {
	full, ok := db.tables.Abbreviations[abbreviation]
	return full, ok
}

// Synonyms returns the alternate surface forms registered for a canonical skill.
func (db *Database) Synonyms(skill string) []string {
	return append([]string(nil), db.tables.Synonyms[skill]...)
}

// Related returns the skills the relationship table links from skill.
func (db *Database) Related(skill string) []string {
	return append([]string(nil), db.tables.Relationships[skill]...)
}

// TotalSkills returns the number of skills across all categories.
func (db *Database) TotalSkills() int {
	return db.total
}

// Overview returns table sizes.
func (db *Database) Overview() Overview {
	return Overview{
		Categories:    len(db.categories),
		Skills:        db.total,
		Abbreviations: len(db.tables.Abbreviations),
		Synonyms:      len(db.tables.Synonyms),
		Relationships: len(db.tables.Relationships),
	}
}

// MarshalJSON writes the database in the same layout LoadDatabase reads.
func (db *Database) MarshalJSON() ([]byte, error) {
	return json.Marshal(databaseFile{Categories: db.categories, Tables: db.tables})
}
