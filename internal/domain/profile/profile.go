package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IconKind selects how an icon is rendered: a hosted image or a named glyph
// from the client's icon set.
type IconKind string

const (
	IconImage IconKind = "image"
	IconGlyph IconKind = "glyph"
)

type Icon struct {
	Kind  IconKind `json:"kind"`
	Src   string   `json:"src,omitempty"`
	Glyph string   `json:"glyph,omitempty"`
	Color string   `json:"color,omitempty"`
	Bg    string   `json:"bg,omitempty"`
}

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

func ValidSkillLevel(s string) bool {
	switch SkillLevel(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

type Service struct {
	Title string `json:"title"`
	Icon  Icon   `json:"icon"`
}

type Skill struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Icon  Icon       `json:"icon"`
	Level SkillLevel `json:"level"`
}

// DateRange keeps the start and end of an experience as separate fields.
// The dash-joined form is display-only and is never parsed back.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (d DateRange) String() string {
	return d.From + " - " + d.To
}

type Experience struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Company string    `json:"company_name"`
	Icon    string    `json:"icon"`
	IconBg  string    `json:"icon_bg"`
	Dates   DateRange `json:"dates"`
	Points  []string  `json:"points"`
}

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// Profile is the full portfolio document of one user. It is persisted as a
// single snapshot: the stored copy reflects the last explicit save, never
// in-progress edits.
type Profile struct {
	OwnerID     uuid.UUID         `json:"owner_id"`
	Username    string            `json:"username"`
	PublicURL   string            `json:"public_url"`
	DisplayName string            `json:"display_name"`
	Tagline     string            `json:"tagline"`
	Overview    string            `json:"overview"`
	Services    []Service         `json:"services"`
	Skills      []Skill           `json:"skills"`
	Experiences []Experience      `json:"experiences"`
	Contact     Contact           `json:"contact"`
	Socials     map[string]string `json:"socials"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ServiceCatalog is the fixed set of offerable service titles. A profile's
// Services list holds a subset of these, in the order the user picked them.
var ServiceCatalog = []Service{
	{Title: "Web Developer", Icon: Icon{Kind: IconGlyph, Glyph: "web"}},
	{Title: "Mobile Developer", Icon: Icon{Kind: IconGlyph, Glyph: "mobile"}},
	{Title: "Backend Developer", Icon: Icon{Kind: IconGlyph, Glyph: "backend"}},
	{Title: "Content Creator", Icon: Icon{Kind: IconGlyph, Glyph: "creator"}},
}

func CatalogService(title string) (Service, bool) {
	for _, s := range ServiceCatalog {
		if s.Title == title {
			return s, true
		}
	}
	return Service{}, false
}

// Default returns the empty profile written once at registration time.
func Default(ownerID uuid.UUID, username, publicURL string) *Profile {
	return &Profile{
		OwnerID:     ownerID,
		Username:    username,
		PublicURL:   publicURL,
		Services:    []Service{},
		Skills:      []Skill{},
		Experiences: []Experience{},
		Socials:     map[string]string{},
	}
}

// HasService reports whether a catalog title is currently selected.
func (p *Profile) HasService(title string) bool {
	for _, s := range p.Services {
		if s.Title == title {
			return true
		}
	}
	return false
}

// ToggleService adds the catalog entry when absent and removes it when
// present. Selection order is display order, so appends go to the end.
func (p *Profile) ToggleService(title string) {
	for i, s := range p.Services {
		if s.Title == title {
			p.Services = append(p.Services[:i], p.Services[i+1:]...)
			return
		}
	}
	if svc, ok := CatalogService(title); ok {
		p.Services = append(p.Services, svc)
	}
}

// SplitPoints turns the free-form highlights text into bullet points: split
// on ".", trim, drop empties.
func SplitPoints(text string) []string {
	parts := strings.Split(text, ".")
	points := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			points = append(points, trimmed)
		}
	}
	return points
}

// Clone deep-copies the profile so editors can mutate a scratch value
// without aliasing the shared one.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Services = append([]Service(nil), p.Services...)
	cp.Skills = append([]Skill(nil), p.Skills...)
	cp.Experiences = make([]Experience, len(p.Experiences))
	for i, e := range p.Experiences {
		e.Points = append([]string(nil), e.Points...)
		cp.Experiences[i] = e
	}
	cp.Socials = make(map[string]string, len(p.Socials))
	for k, v := range p.Socials {
		cp.Socials[k] = v
	}
	return &cp
}

type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Save(ctx context.Context, profile *Profile) error
}
