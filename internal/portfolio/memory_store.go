package portfolio

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore backs tests and local development without a database.
type MemoryStore struct {
	mu      sync.Mutex
	bio     *Bio
	contact *Contact

	projects     memCol[Project]
	skills       memCol[Skill]
	experiences  memCol[Experience]
	educations   memCol[Education]
	achievements memCol[Achievement]
	certificates memCol[Certificate]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:     newMemCol(func(p *Project) *primitive.ObjectID { return &p.ID }),
		skills:       newMemCol(func(s *Skill) *primitive.ObjectID { return &s.ID }),
		experiences:  newMemCol(func(e *Experience) *primitive.ObjectID { return &e.ID }),
		educations:   newMemCol(func(e *Education) *primitive.ObjectID { return &e.ID }),
		achievements: newMemCol(func(a *Achievement) *primitive.ObjectID { return &a.ID }),
		certificates: newMemCol(func(c *Certificate) *primitive.ObjectID { return &c.ID }),
	}
}

// memCol is an in-memory stand-in for one mongo collection.
type memCol[T any] struct {
	mu    *sync.Mutex
	items []*T
	id    func(*T) *primitive.ObjectID
}

func newMemCol[T any](id func(*T) *primitive.ObjectID) memCol[T] {
	return memCol[T]{mu: &sync.Mutex{}, id: id}
}

func (c *memCol[T]) list(less func(a, b *T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.items))
	items := append([]*T(nil), c.items...)
	if less != nil {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	}
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func (c *memCol[T]) create(src *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.id(src) = primitive.NewObjectID()
	clone := *src
	c.items = append(c.items, &clone)
}

func (c *memCol[T]) update(id string, src *T) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if *c.id(it) == oid {
			clone := *src
			*c.id(&clone) = oid
			*it = clone
			out := clone
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (c *memCol[T]) delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if *c.id(it) == oid {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ---------- singletons ----------

func (s *MemoryStore) Bio(ctx context.Context) (*Bio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bio == nil {
		return nil, ErrNotFound
	}
	clone := *s.bio
	return &clone, nil
}

func (s *MemoryStore) UpsertBio(ctx context.Context, b *Bio) (*Bio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *b
	if s.bio != nil {
		clone.ID = s.bio.ID
	} else if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	s.bio = &clone
	out := clone
	return &out, nil
}

func (s *MemoryStore) Contact(ctx context.Context) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contact == nil {
		return nil, ErrNotFound
	}
	clone := *s.contact
	return &clone, nil
}

func (s *MemoryStore) UpsertContact(ctx context.Context, c *Contact) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *c
	if s.contact != nil {
		clone.ID = s.contact.ID
	} else if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	s.contact = &clone
	out := clone
	return &out, nil
}

// ---------- collections ----------

func (s *MemoryStore) Projects(ctx context.Context) ([]Project, error) {
	return s.projects.list(func(a, b *Project) bool { return a.Timestamp.After(b.Timestamp) }), nil
}
func (s *MemoryStore) CreateProject(ctx context.Context, p *Project) error {
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	s.projects.create(p)
	return nil
}
func (s *MemoryStore) UpdateProject(ctx context.Context, id string, p *Project) (*Project, error) {
	return s.projects.update(id, p)
}
func (s *MemoryStore) DeleteProject(ctx context.Context, id string) error {
	return s.projects.delete(id)
}

func (s *MemoryStore) Skills(ctx context.Context) ([]Skill, error) {
	return s.skills.list(nil), nil
}
func (s *MemoryStore) CreateSkill(ctx context.Context, sk *Skill) error {
	s.skills.create(sk)
	return nil
}
func (s *MemoryStore) UpdateSkill(ctx context.Context, id string, sk *Skill) (*Skill, error) {
	return s.skills.update(id, sk)
}
func (s *MemoryStore) DeleteSkill(ctx context.Context, id string) error {
	return s.skills.delete(id)
}

func (s *MemoryStore) Experiences(ctx context.Context) ([]Experience, error) {
	return s.experiences.list(nil), nil
}
func (s *MemoryStore) CreateExperience(ctx context.Context, e *Experience) error {
	s.experiences.create(e)
	return nil
}
func (s *MemoryStore) UpdateExperience(ctx context.Context, id string, e *Experience) (*Experience, error) {
	return s.experiences.update(id, e)
}
func (s *MemoryStore) DeleteExperience(ctx context.Context, id string) error {
	return s.experiences.delete(id)
}

func (s *MemoryStore) Educations(ctx context.Context) ([]Education, error) {
	return s.educations.list(nil), nil
}
func (s *MemoryStore) CreateEducation(ctx context.Context, e *Education) error {
	s.educations.create(e)
	return nil
}
func (s *MemoryStore) UpdateEducation(ctx context.Context, id string, e *Education) (*Education, error) {
	return s.educations.update(id, e)
}
func (s *MemoryStore) DeleteEducation(ctx context.Context, id string) error {
	return s.educations.delete(id)
}

func (s *MemoryStore) Achievements(ctx context.Context) ([]Achievement, error) {
	return s.achievements.list(func(a, b *Achievement) bool { return a.Year > b.Year }), nil
}
func (s *MemoryStore) CreateAchievement(ctx context.Context, a *Achievement) error {
	s.achievements.create(a)
	return nil
}
func (s *MemoryStore) UpdateAchievement(ctx context.Context, id string, a *Achievement) (*Achievement, error) {
	return s.achievements.update(id, a)
}
func (s *MemoryStore) DeleteAchievement(ctx context.Context, id string) error {
	return s.achievements.delete(id)
}

func (s *MemoryStore) Certificates(ctx context.Context) ([]Certificate, error) {
	return s.certificates.list(func(a, b *Certificate) bool { return a.Timestamp.After(b.Timestamp) }), nil
}
func (s *MemoryStore) CreateCertificate(ctx context.Context, c *Certificate) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	s.certificates.create(c)
	return nil
}
func (s *MemoryStore) UpdateCertificate(ctx context.Context, id string, c *Certificate) (*Certificate, error) {
	return s.certificates.update(id, c)
}
func (s *MemoryStore) DeleteCertificate(ctx context.Context, id string) error {
	return s.certificates.delete(id)
}
