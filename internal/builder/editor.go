package builder

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/apperror"
)

type EditorMode string

const (
	ModeAdd  EditorMode = "add"
	ModeEdit EditorMode = "edit"
)

// editor is the shared add/edit/delete machine for the repeated sub-records
// inside a profile. Add appends with a fresh id and stays in Add mode; Edit
// replaces the selected record in place, keeping its position and id, then
// returns to Add; Delete only exists in Edit mode and does not need a valid
// draft. The record slice itself lives in the session Store, reached only
// through read/write.
type editor[R any] struct {
	mu        sync.Mutex
	mode      EditorMode
	editingID uuid.UUID
	idOf      func(R) uuid.UUID
	setID     func(*R, uuid.UUID)
	read      func() []R
	write     func([]R)
}

func newEditor[R any](
	idOf func(R) uuid.UUID,
	setID func(*R, uuid.UUID),
	read func() []R,
	write func([]R),
) *editor[R] {
	return &editor[R]{
		mode:  ModeAdd,
		idOf:  idOf,
		setID: setID,
		read:  read,
		write: write,
	}
}

func (e *editor[R]) Mode() EditorMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *editor[R]) EditingID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editingID
}

// BeginEdit selects an existing record; the returned copy seeds the draft.
func (e *editor[R]) BeginEdit(id uuid.UUID) (R, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, rec := range e.read() {
		if e.idOf(rec) == id {
			e.mode = ModeEdit
			e.editingID = id
			return rec, nil
		}
	}
	var zero R
	return zero, apperror.NewNotFound("record", id.String())
}

// Cancel abandons the draft and returns to Add mode.
func (e *editor[R]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeAdd
	e.editingID = uuid.Nil
}

// Submit commits a validated draft. In Add mode the record gets a fresh
// unique id and is appended; in Edit mode the record bearing the edited id
// is replaced where it stands, so element order survives the update.
func (e *editor[R]) Submit(draft R) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	records := e.read()
	switch e.mode {
	case ModeEdit:
		replaced := false
		for i, rec := range records {
			if e.idOf(rec) == e.editingID {
				e.setID(&draft, e.editingID)
				records[i] = draft
				replaced = true
				break
			}
		}
		if !replaced {
			return apperror.NewNotFound("record", e.editingID.String())
		}
		e.write(records)
		e.mode = ModeAdd
		e.editingID = uuid.Nil
	default:
		e.setID(&draft, uuid.New())
		e.write(append(records, draft))
	}
	return nil
}

// Delete removes the record currently being edited and returns to Add mode.
func (e *editor[R]) Delete() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != ModeEdit {
		return apperror.NewInvalidInput("delete requires a record selected for editing", nil)
	}
	records := e.read()
	kept := make([]R, 0, len(records))
	for _, rec := range records {
		if e.idOf(rec) != e.editingID {
			kept = append(kept, rec)
		}
	}
	e.write(kept)
	e.mode = ModeAdd
	e.editingID = uuid.Nil
	return nil
}

// --- Skills ---

type SkillDraft struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

var skillSchema = Schema{
	"name": {
		{Required: true, Message: "Skill name is required"},
		{MaxLength: 50, Message: "Skill name must be less than 50 characters"},
	},
	"level": {
		{Required: true, Message: "Skill level is required"},
		{Check: func(v string) string {
			if !profile.ValidSkillLevel(v) {
				return "Skill level must be Beginner, Intermediate, Advanced or Expert"
			}
			return ""
		}},
	},
}

// SkillEditor manages the skills collection; submits merge into the shared
// profile through the store (delayed sync, unlike the introduction and
// overview steps which mutate live).
type SkillEditor struct {
	*editor[profile.Skill]
}

func NewSkillEditor(store *Store) *SkillEditor {
	return &SkillEditor{
		editor: newEditor(
			func(s profile.Skill) uuid.UUID { return s.ID },
			func(s *profile.Skill, id uuid.UUID) { s.ID = id },
			func() []profile.Skill { return store.Snapshot().Skills },
			func(skills []profile.Skill) {
				store.Mutate(func(p profile.Profile) profile.Profile {
					p.Skills = skills
					return p
				})
			},
		),
	}
}

func (e *SkillEditor) Validate(d SkillDraft) FieldErrors {
	return skillSchema.Validate(map[string]string{
		"name":  d.Name,
		"level": d.Level,
	})
}

func (e *SkillEditor) Submit(d SkillDraft) (FieldErrors, error) {
	if errs := e.Validate(d); !errs.Ok() {
		return errs, nil
	}
	skill := profile.Skill{
		Name:  d.Name,
		Icon:  IconForSkill(d.Name),
		Level: profile.SkillLevel(d.Level),
	}
	return nil, e.editor.Submit(skill)
}

func (e *SkillEditor) BeginEdit(id uuid.UUID) (SkillDraft, error) {
	skill, err := e.editor.BeginEdit(id)
	if err != nil {
		return SkillDraft{}, err
	}
	return SkillDraft{Name: skill.Name, Level: string(skill.Level)}, nil
}

// --- Experiences ---

type ExperienceDraft struct {
	Title      string `json:"title"`
	Company    string `json:"company_name"`
	Icon       string `json:"icon"`
	IconBg     string `json:"icon_bg"`
	From       string `json:"from"`
	To         string `json:"to"`
	PointsText string `json:"points_text"`
}

var experienceSchema = Schema{
	"company_name": {
		{Required: true, Message: "Company is required"},
	},
	"title": {
		{Required: true, Message: "Position is required"},
	},
	"from": {
		{Required: true, Message: "Start month is required"},
	},
	"to": {
		{Required: true, Message: "End month is required"},
	},
	"points_text": {
		{Required: true, Message: "Write a few lines about your experience"},
		{MinLength: 10, Message: "Experience description must be at least 10 characters"},
	},
	"icon": {
		{Pattern: URLPattern, Message: "Logo must be a URL starting with http:// or https://"},
	},
}

// ExperienceEditor manages the experiences collection. Drafts carry the raw
// form values; the record keeps the structured date range and the split
// bullet points.
type ExperienceEditor struct {
	*editor[profile.Experience]
}

func NewExperienceEditor(store *Store) *ExperienceEditor {
	return &ExperienceEditor{
		editor: newEditor(
			func(e profile.Experience) uuid.UUID { return e.ID },
			func(e *profile.Experience, id uuid.UUID) { e.ID = id },
			func() []profile.Experience { return store.Snapshot().Experiences },
			func(exps []profile.Experience) {
				store.Mutate(func(p profile.Profile) profile.Profile {
					p.Experiences = exps
					return p
				})
			},
		),
	}
}

func (e *ExperienceEditor) Validate(d ExperienceDraft) FieldErrors {
	return experienceSchema.Validate(map[string]string{
		"company_name": d.Company,
		"title":        d.Title,
		"from":         d.From,
		"to":           d.To,
		"points_text":  d.PointsText,
		"icon":         d.Icon,
	})
}

func (e *ExperienceEditor) Submit(d ExperienceDraft) (FieldErrors, error) {
	if errs := e.Validate(d); !errs.Ok() {
		return errs, nil
	}
	exp := profile.Experience{
		Title:   d.Title,
		Company: d.Company,
		Icon:    d.Icon,
		IconBg:  d.IconBg,
		Dates:   profile.DateRange{From: d.From, To: d.To},
		Points:  profile.SplitPoints(d.PointsText),
	}
	return nil, e.editor.Submit(exp)
}

func (e *ExperienceEditor) BeginEdit(id uuid.UUID) (ExperienceDraft, error) {
	exp, err := e.editor.BeginEdit(id)
	if err != nil {
		return ExperienceDraft{}, err
	}
	// Points re-join with ". " purely to refill the textarea; the stored
	// record keeps the structured slice.
	text := ""
	for i, p := range exp.Points {
		if i > 0 {
			text += ". "
		}
		text += p
	}
	if text != "" {
		text += "."
	}
	return ExperienceDraft{
		Title:      exp.Title,
		Company:    exp.Company,
		Icon:       exp.Icon,
		IconBg:     exp.IconBg,
		From:       exp.Dates.From,
		To:         exp.Dates.To,
		PointsText: text,
	}, nil
}
