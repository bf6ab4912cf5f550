package builder

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/logger"
)

var introSchema = Schema{
	"display_name": {
		{Required: true, Message: "Name is required"},
		{Pattern: NamePattern, Message: "Name can only contain letters and spaces"},
	},
	"tagline": {
		{Required: true, Message: "Tagline is required"},
		{MaxLength: 120, Message: "Tagline must be less than 120 characters"},
	},
	"email": {
		{Pattern: EmailPattern, Message: "Please enter a valid email address"},
	},
	"phone": {
		{Pattern: PhonePattern, Message: "Please enter a valid phone number"},
	},
	"website": {
		{Pattern: URLPattern, Message: "Please enter a valid URL starting with http:// or https://"},
	},
}

var overviewSchema = Schema{
	"overview": {
		{Required: true, Message: "About section is required"},
		{MinLength: 20, Message: "About section must be at least 20 characters"},
	},
}

// Session binds one user's builder state: the shared profile store, the
// wizard, and the three collection editors.
//
// The per-step sync contract is asymmetric on purpose: introduction and
// overview updates mutate the shared profile on every field change, while
// skills and experiences merge only on editor submit and projects write
// straight to the remote collection. Do not unify these paths.
type Session struct {
	OwnerID     uuid.UUID
	Store       *Store
	Wizard      *Wizard
	Skills      *SkillEditor
	Experiences *ExperienceEditor
	Projects    *ProjectEditor
}

func NewSession(
	ownerID uuid.UUID,
	repo profile.Repository,
	writer ProjectWriter,
	watcher project.Watcher,
	log logger.Logger,
	cfg WizardConfig,
) *Session {
	store := NewStore(repo, log)
	s := &Session{
		OwnerID:     ownerID,
		Store:       store,
		Skills:      NewSkillEditor(store),
		Experiences: NewExperienceEditor(store),
		Projects:    NewProjectEditor(ownerID, writer, watcher, log),
	}
	s.Wizard = NewWizard(cfg, map[Step]StepValidator{
		StepIntroduction: s.validateIntroduction,
		StepOverview:     s.validateOverview,
	})
	return s
}

// Open loads the stored profile and starts the project listener. It runs
// before any editor is served, so editors always see either the stored
// document or a known default, never uninitialized state.
func (s *Session) Open(ctx context.Context) error {
	if err := s.Store.Load(ctx, s.OwnerID); err != nil {
		return err
	}
	return s.Projects.Start(ctx)
}

// Close tears the live listener down; required on logout or identity change.
func (s *Session) Close() {
	s.Projects.Stop()
}

func (s *Session) validateIntroduction() FieldErrors {
	p := s.Store.Snapshot()
	return introSchema.Validate(map[string]string{
		"display_name": p.DisplayName,
		"tagline":      p.Tagline,
		"email":        p.Contact.Email,
		"phone":        p.Contact.Phone,
		"website":      p.Contact.Website,
	})
}

func (s *Session) validateOverview() FieldErrors {
	p := s.Store.Snapshot()
	errs := overviewSchema.Validate(map[string]string{
		"overview": p.Overview,
	})
	if len(p.Services) == 0 {
		errs["services"] = "Select at least one service you offer"
	}
	return errs
}

// UpdateIntroduction applies one introduction field change directly to the
// shared profile (live sync) and returns the field's live validation
// message, empty when the value is fine. Unknown fields are ignored.
func (s *Session) UpdateIntroduction(field, value string) string {
	s.Store.Mutate(func(p profile.Profile) profile.Profile {
		switch field {
		case "display_name":
			p.DisplayName = value
		case "tagline":
			p.Tagline = value
		case "email":
			p.Contact.Email = value
		case "phone":
			p.Contact.Phone = value
		case "address":
			p.Contact.Address = value
		case "website":
			p.Contact.Website = value
		}
		return p
	})
	return introSchema.ValidateField(field, value)
}

// SetSocial sets or clears one social link; an empty URL removes the entry.
func (s *Session) SetSocial(platform, url string) string {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return "Platform name is required"
	}
	if url != "" && !URLPattern.MatchString(url) {
		return "Please enter a valid URL starting with http:// or https://"
	}
	s.Store.Mutate(func(p profile.Profile) profile.Profile {
		if url == "" {
			delete(p.Socials, platform)
		} else {
			p.Socials[platform] = url
		}
		return p
	})
	return ""
}

// UpdateOverview applies the overview text change live, like introduction.
func (s *Session) UpdateOverview(text string) string {
	s.Store.Mutate(func(p profile.Profile) profile.Profile {
		p.Overview = text
		return p
	})
	return overviewSchema.ValidateField("overview", text)
}

// ToggleService flips one catalog service on the shared profile. Membership
// is exactly the set of checked boxes; order of selection is display order.
func (s *Session) ToggleService(title string) {
	s.Store.Mutate(func(p profile.Profile) profile.Profile {
		p.ToggleService(title)
		return p
	})
}

// Manager hands out one session per authenticated user. Sessions are created
// lazily on first builder request and dropped on logout.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	profiles profile.Repository
	writer   ProjectWriter
	watcher  project.Watcher
	log      logger.Logger
	cfg      WizardConfig
}

func NewManager(profiles profile.Repository, writer ProjectWriter, watcher project.Watcher, log logger.Logger, cfg WizardConfig) *Manager {
	return &Manager{
		sessions: map[uuid.UUID]*Session{},
		profiles: profiles,
		writer:   writer,
		watcher:  watcher,
		log:      log,
		cfg:      cfg,
	}
}

// GetOrCreate returns the user's live session, opening one (profile load +
// project listener) when none exists yet.
func (m *Manager) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[ownerID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s := NewSession(ownerID, m.profiles, m.writer, m.watcher, m.log, m.cfg)
	if err := s.Open(ctx); err != nil {
		s.Close()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[ownerID]; ok {
		s.Close()
		return existing, nil
	}
	m.sessions[ownerID] = s
	return s, nil
}

// Drop closes and forgets the user's session.
func (m *Manager) Drop(ownerID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[ownerID]
	delete(m.sessions, ownerID)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}
