// Package types provides type definitions for structured data used throughout the resume-paginator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column placement hints carried by custom sections
const (
	PlacementPrimary   = "primary"
	PlacementSecondary = "secondary"
)

// Document is an immutable snapshot of a resume as supplied by the document store.
// Every field is optional; absent data produces no content units.
type Document struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Experience     []Experience    `json:"experience,omitempty" validate:"dive"`
	Education      []Education     `json:"education,omitempty" validate:"dive"`
	Skills         []Skill         `json:"skills,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	CustomSections []CustomSection `json:"custom_sections,omitempty" validate:"dive"`
}

// PersonalInfo holds the identity and contact block of a resume
type PersonalInfo struct {
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// HasContact reports whether any contact field is present
func (p PersonalInfo) HasContact() bool {
	return p.Phone != "" || p.Email != "" || p.Address != ""
}

// Experience represents one work history entry
type Experience struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education represents one education entry
type Education struct {
	School      string `json:"school,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Certification represents a single certification line
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Language represents a spoken language and proficiency
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Project represents a portfolio project
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// CustomSection is a free-form section with a column placement hint
type CustomSection struct {
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	Placement string `json:"placement,omitempty" validate:"omitempty,oneof=primary secondary"`
}

// IsBlank reports whether the section has neither a title nor content
func (c CustomSection) IsBlank() bool {
	return strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Content) == ""
}

// InSecondaryColumn reports whether the section asks for the sidebar column.
// Anything other than an explicit "secondary" hint stays in the primary column.
func (c CustomSection) InSecondaryColumn() bool {
	return c.Placement == PlacementSecondary
}

// Skill is either a bare name or a name with a proficiency level.
// The JSON form may be a plain string or an object; both decode into Skill.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// HasLevel reports whether the skill carries a proficiency level
func (s Skill) HasLevel() bool {
	return s.Level != ""
}

// UnmarshalJSON accepts either "Go" or {"name": "Go", "level": "expert"}
func (s *Skill) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("failed to decode skill name: %w", err)
		}
		*s = Skill{Name: name}
		return nil
	}

	type plain Skill
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode skill object: %w", err)
	}
	*s = Skill(p)
	return nil
}

// MarshalJSON writes a bare string when no level is set
func (s Skill) MarshalJSON() ([]byte, error) {
	if !s.HasLevel() {
		return json.Marshal(s.Name)
	}
	type plain Skill
	return json.Marshal(plain(s))
}

// Validate validates the Document using the validator.
// Field names in errors use the JSON names, e.g. "Document.personal_info.email".
func (d *Document) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	return validate.Struct(d)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// IsEmpty reports whether the document holds no placeable content at all
func (d *Document) IsEmpty() bool {
	for _, cs := range d.CustomSections {
		if !cs.IsBlank() {
			return false
		}
	}
	return d.PersonalInfo.Summary == "" &&
		!d.PersonalInfo.HasContact() &&
		len(d.Experience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Certifications) == 0 &&
		len(d.Languages) == 0
}
