package resume

import (
	"context"
	"errors"
	"fmt"

	"myblog/backend/internal/apperror"
)

// ResumeService defines the business logic contract for the resume.
type ResumeService interface {
	GetResume(ctx context.Context) (*Resume, error)
	ListSections(ctx context.Context, sectionType string) ([]Section, error)
	CreateSection(ctx context.Context, req SectionCreateRequest) (*Section, error)
	UpdateSection(ctx context.Context, id int64, req SectionUpdateRequest) (*Section, error)
	DeleteSection(ctx context.Context, id int64) error
}

// resumeService implements ResumeService.
type resumeService struct {
	repo SectionRepository
}

// NewResumeService creates a new resume service.
func NewResumeService(repo SectionRepository) ResumeService {
	return &resumeService{repo: repo}
}

// GetResume returns visible sections grouped by type. Every group is present
// in the payload even when empty so the frontend never branches on missing
// keys.
func (s *resumeService) GetResume(ctx context.Context) (*Resume, error) {
	sections, err := s.repo.List(ctx, SectionFilter{VisibleOnly: true})
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing sections: %w", err))
	}

	resume := &Resume{
		PersonalInfo: make([]Section, 0),
		Education:    make([]Section, 0),
		Experience:   make([]Section, 0),
		Skills:       make([]Section, 0),
		Projects:     make([]Section, 0),
	}
	for _, section := range sections {
		switch section.SectionType {
		case SectionPersonalInfo:
			resume.PersonalInfo = append(resume.PersonalInfo, section)
		case SectionEducation:
			resume.Education = append(resume.Education, section)
		case SectionExperience:
			resume.Experience = append(resume.Experience, section)
		case SectionSkills:
			resume.Skills = append(resume.Skills, section)
		case SectionProjects:
			resume.Projects = append(resume.Projects, section)
		}
	}

	return resume, nil
}

// ListSections returns all sections, optionally restricted to one type. An
// unknown type string is a validation error rather than an empty result.
func (s *resumeService) ListSections(ctx context.Context, sectionType string) ([]Section, error) {
	filter := SectionFilter{}
	if sectionType != "" {
		st := SectionType(sectionType)
		if !st.Valid() {
			return nil, apperror.NewValidation(fmt.Sprintf("unknown section type %q", sectionType))
		}
		filter.Type = &st
	}

	sections, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing sections: %w", err))
	}
	if sections == nil {
		sections = make([]Section, 0)
	}
	return sections, nil
}

// CreateSection creates a new resume section. Visibility defaults to true
// when the request omits it.
func (s *resumeService) CreateSection(ctx context.Context, req SectionCreateRequest) (*Section, error) {
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	section := &Section{
		SectionType: req.SectionType,
		Title:       req.Title,
		Content:     req.Content,
		OrderIndex:  req.OrderIndex,
		IsVisible:   visible,
	}

	if err := s.repo.Create(ctx, section); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating section: %w", err))
	}
	return section, nil
}

// UpdateSection applies a patch to a section.
func (s *resumeService) UpdateSection(ctx context.Context, id int64, req SectionUpdateRequest) (*Section, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding section: %w", err))
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Content != nil {
		section.Content = req.Content
	}
	if req.OrderIndex != nil {
		section.OrderIndex = *req.OrderIndex
	}
	if req.IsVisible != nil {
		section.IsVisible = *req.IsVisible
	}

	if err := s.repo.Update(ctx, section); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("updating section: %w", err))
	}
	return section, nil
}

// DeleteSection removes a section.
func (s *resumeService) DeleteSection(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting section: %w", err))
	}
	return nil
}
