package http

import (
	"time"

	"github.com/gourav132/Show-IT/internal/builder"
	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/project"
)

// Project DTOs

type ProjectDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	GithubLink  string    `json:"github_link"`
	ProjectLink string    `json:"project_link"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProjectDTO(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		About:       p.About,
		GithubLink:  p.GithubLink,
		ProjectLink: p.ProjectLink,
		FileURL:     p.FileURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProjectDTOs(projects []*project.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// Profile DTOs. The domain types already carry their wire shape; the DTO
// exists to keep the owner id off the public payload.

type ProfileDTO struct {
	Username    string               `json:"username"`
	PublicURL   string               `json:"public_url"`
	DisplayName string               `json:"display_name"`
	Tagline     string               `json:"tagline"`
	Overview    string               `json:"overview"`
	Services    []profile.Service    `json:"services"`
	Skills      []profile.Skill      `json:"skills"`
	Experiences []profile.Experience `json:"experiences"`
	Contact     profile.Contact      `json:"contact"`
	Socials     map[string]string    `json:"socials"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func ToProfileDTO(p profile.Profile) ProfileDTO {
	return ProfileDTO{
		Username:    p.Username,
		PublicURL:   p.PublicURL,
		DisplayName: p.DisplayName,
		Tagline:     p.Tagline,
		Overview:    p.Overview,
		Services:    p.Services,
		Skills:      p.Skills,
		Experiences: p.Experiences,
		Contact:     p.Contact,
		Socials:     p.Socials,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PortfolioDTO is the public viewer payload: the saved profile plus the live
// project collection.
type PortfolioDTO struct {
	Profile  ProfileDTO   `json:"profile"`
	Projects []ProjectDTO `json:"projects"`
}

// Builder DTOs

type BuilderStateDTO struct {
	Step            string              `json:"step"`
	Loading         bool                `json:"loading"`
	Errors          builder.FieldErrors `json:"errors"`
	Profile         ProfileDTO          `json:"profile"`
	Projects        []ProjectDTO        `json:"projects"`
	SkillsMode      string              `json:"skills_mode"`
	ExperiencesMode string              `json:"experiences_mode"`
	ProjectsMode    string              `json:"projects_mode"`
	ProjectsBusy    bool                `json:"projects_busy"`
}

func ToBuilderStateDTO(s *builder.Session) BuilderStateDTO {
	return BuilderStateDTO{
		Step:            string(s.Wizard.Current()),
		Loading:         s.Store.Loading(),
		Errors:          s.Wizard.Errors(),
		Profile:         ToProfileDTO(s.Store.Snapshot()),
		Projects:        ToProjectDTOs(s.Projects.Projects()),
		SkillsMode:      string(s.Skills.Mode()),
		ExperiencesMode: string(s.Experiences.Mode()),
		ProjectsMode:    string(s.Projects.Mode()),
		ProjectsBusy:    s.Projects.Busy(),
	}
}
