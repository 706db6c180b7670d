// Package resume implements the resume sections: typed content blocks
// (personal info, education, experience, skills, projects) ordered by an
// explicit index. The public read groups visible sections by type; section
// management is authenticated.
package resume

import (
	"time"
)

// SectionType classifies a resume section. The set is closed; unknown types
// are rejected at the API boundary.
type SectionType string

const (
	SectionPersonalInfo SectionType = "personal_info"
	SectionEducation    SectionType = "education"
	SectionExperience   SectionType = "experience"
	SectionSkills       SectionType = "skills"
	SectionProjects     SectionType = "projects"
)

// SectionTypes lists every valid section type in display order.
var SectionTypes = []SectionType{
	SectionPersonalInfo,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
}

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionPersonalInfo, SectionEducation, SectionExperience, SectionSkills, SectionProjects:
		return true
	}
	return false
}

// Section is one resume content block.
type Section struct {
	ID          int64       `json:"id"`
	SectionType SectionType `json:"section_type"`
	Title       string      `json:"title"`
	Content     *string     `json:"content,omitempty"`
	OrderIndex  int         `json:"order_index"`
	IsVisible   bool        `json:"is_visible"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Resume is the public resume payload: visible sections grouped by type,
// each group ordered by order_index.
type Resume struct {
	PersonalInfo []Section `json:"personal_info"`
	Education    []Section `json:"education"`
	Experience   []Section `json:"experience"`
	Skills       []Section `json:"skills"`
	Projects     []Section `json:"projects"`
}

// SectionFilter restricts section listings.
type SectionFilter struct {
	// Type restricts to one section type when non-nil.
	Type *SectionType

	// VisibleOnly hides sections flagged invisible. The public resume
	// view always sets this.
	VisibleOnly bool
}

// --- Request DTOs ---

// SectionCreateRequest holds the fields for a new section.
type SectionCreateRequest struct {
	SectionType SectionType `json:"section_type" validate:"required,oneof=personal_info education experience skills projects"`
	Title       string      `json:"title" validate:"required,max=200"`
	Content     *string     `json:"content"`
	OrderIndex  int         `json:"order_index"`
	IsVisible   *bool       `json:"is_visible"`
}

// SectionUpdateRequest is a patch: only non-nil fields are applied. The
// section type is fixed at creation.
type SectionUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content"`
	OrderIndex *int    `json:"order_index"`
	IsVisible  *bool   `json:"is_visible"`
}
