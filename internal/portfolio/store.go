package portfolio

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store is the content data-access boundary. Bio and Contact follow the
// singleton-document pattern; everything else is plain collection CRUD.
// Updates replace the stored fields with the given entity's fields and
// return ErrNotFound when no document matches the id.
type Store interface {
	Bio(ctx context.Context) (*Bio, error)
	UpsertBio(ctx context.Context, b *Bio) (*Bio, error)

	Contact(ctx context.Context) (*Contact, error)
	UpsertContact(ctx context.Context, c *Contact) (*Contact, error)

	Projects(ctx context.Context) ([]Project, error) // newest first
	CreateProject(ctx context.Context, p *Project) error
	UpdateProject(ctx context.Context, id string, p *Project) (*Project, error)
	DeleteProject(ctx context.Context, id string) error

	Skills(ctx context.Context) ([]Skill, error)
	CreateSkill(ctx context.Context, s *Skill) error
	UpdateSkill(ctx context.Context, id string, s *Skill) (*Skill, error)
	DeleteSkill(ctx context.Context, id string) error

	Experiences(ctx context.Context) ([]Experience, error)
	CreateExperience(ctx context.Context, e *Experience) error
	UpdateExperience(ctx context.Context, id string, e *Experience) (*Experience, error)
	DeleteExperience(ctx context.Context, id string) error

	Educations(ctx context.Context) ([]Education, error)
	CreateEducation(ctx context.Context, e *Education) error
	UpdateEducation(ctx context.Context, id string, e *Education) (*Education, error)
	DeleteEducation(ctx context.Context, id string) error

	Achievements(ctx context.Context) ([]Achievement, error) // newest year first
	CreateAchievement(ctx context.Context, a *Achievement) error
	UpdateAchievement(ctx context.Context, id string, a *Achievement) (*Achievement, error)
	DeleteAchievement(ctx context.Context, id string) error

	Certificates(ctx context.Context) ([]Certificate, error) // newest first
	CreateCertificate(ctx context.Context, c *Certificate) error
	UpdateCertificate(ctx context.Context, id string, c *Certificate) (*Certificate, error)
	DeleteCertificate(ctx context.Context, id string) error
}

// Aggregate collects everything a visitor sees in one call. Missing
// singletons come back as nil, empty collections as empty slices.
func Aggregate(ctx context.Context, s Store) (*Data, error) {
	d := &Data{
		Projects:     []Project{},
		Skills:       []Skill{},
		Experiences:  []Experience{},
		Educations:   []Education{},
		Achievements: []Achievement{},
		Certificates: []Certificate{},
	}

	bio, err := s.Bio(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	d.Bio = bio

	contact, err := s.Contact(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	d.Contact = contact

	if v, err := s.Projects(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Projects = v
	}
	if v, err := s.Skills(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Skills = v
	}
	if v, err := s.Experiences(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Experiences = v
	}
	if v, err := s.Educations(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Educations = v
	}
	if v, err := s.Achievements(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Achievements = v
	}
	if v, err := s.Certificates(ctx); err != nil {
		return nil, err
	} else if v != nil {
		d.Certificates = v
	}
	return d, nil
}
