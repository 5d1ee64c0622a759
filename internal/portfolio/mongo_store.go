package portfolio

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each entity in its own collection within one database.
// It shares the process-wide client; connection lifecycle belongs to the caller.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(cli *mongo.Client, dbName string) (*MongoStore, error) {
	if cli == nil {
		return nil, errors.New("mongo client is nil")
	}
	return &MongoStore{db: cli.Database(dbName)}, nil
}

func (s *MongoStore) coll(name string) *mongo.Collection { return s.db.Collection(name) }

// findSingleton loads the one document of a singleton collection.
func findSingleton[T any](ctx context.Context, c *mongo.Collection) (*T, error) {
	var doc T
	err := c.FindOne(ctx, bson.M{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// upsertSingleton replaces the one document (creating it if absent) and
// returns the stored state.
func upsertSingleton[T any](ctx context.Context, c *mongo.Collection, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc T
	err := c.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func listAll[T any](ctx context.Context, c *mongo.Collection, sort bson.D) ([]T, error) {
	opts := options.Find()
	if sort != nil {
		opts = opts.SetSort(sort)
	}
	cur, err := c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func insertOne(ctx context.Context, c *mongo.Collection, doc any) (primitive.ObjectID, error) {
	res, err := c.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// updateByID applies $set and returns the updated document.
func updateByID[T any](ctx context.Context, c *mongo.Collection, id string, set bson.M) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, c *mongo.Collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- singletons ----------

func (s *MongoStore) Bio(ctx context.Context) (*Bio, error) {
	return findSingleton[Bio](ctx, s.coll("bio"))
}

func (s *MongoStore) UpsertBio(ctx context.Context, b *Bio) (*Bio, error) {
	return upsertSingleton[Bio](ctx, s.coll("bio"), bson.M{
		"name":        b.Name,
		"title":       b.Title,
		"description": b.Description,
		"image":       b.Image,
		"resume":      b.Resume,
	})
}

func (s *MongoStore) Contact(ctx context.Context) (*Contact, error) {
	return findSingleton[Contact](ctx, s.coll("contact"))
}

func (s *MongoStore) UpsertContact(ctx context.Context, c *Contact) (*Contact, error) {
	return upsertSingleton[Contact](ctx, s.coll("contact"), bson.M{
		"email":     c.Email,
		"phone":     c.Phone,
		"address":   c.Address,
		"github":    c.Github,
		"linkedin":  c.Linkedin,
		"twitter":   c.Twitter,
		"instagram": c.Instagram,
	})
}

// ---------- collections ----------

func (s *MongoStore) Projects(ctx context.Context) ([]Project, error) {
	return listAll[Project](ctx, s.coll("projects"), bson.D{{Key: "timestamp", Value: -1}})
}

func (s *MongoStore) CreateProject(ctx context.Context, p *Project) error {
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	oid, err := insertOne(ctx, s.coll("projects"), p)
	if err != nil {
		return err
	}
	p.ID = oid
	return nil
}

func (s *MongoStore) UpdateProject(ctx context.Context, id string, p *Project) (*Project, error) {
	return updateByID[Project](ctx, s.coll("projects"), id, bson.M{
		"title":       p.Title,
		"category":    p.Category,
		"description": p.Description,
		"image":       p.Image,
		"github":      p.Github,
		"live":        p.Live,
	})
}

func (s *MongoStore) DeleteProject(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("projects"), id)
}

func (s *MongoStore) Skills(ctx context.Context) ([]Skill, error) {
	return listAll[Skill](ctx, s.coll("skills"), nil)
}

func (s *MongoStore) CreateSkill(ctx context.Context, sk *Skill) error {
	oid, err := insertOne(ctx, s.coll("skills"), sk)
	if err != nil {
		return err
	}
	sk.ID = oid
	return nil
}

func (s *MongoStore) UpdateSkill(ctx context.Context, id string, sk *Skill) (*Skill, error) {
	return updateByID[Skill](ctx, s.coll("skills"), id, bson.M{
		"name": sk.Name,
		"icon": sk.Icon,
	})
}

func (s *MongoStore) DeleteSkill(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("skills"), id)
}

func (s *MongoStore) Experiences(ctx context.Context) ([]Experience, error) {
	return listAll[Experience](ctx, s.coll("experiences"), nil)
}

func (s *MongoStore) CreateExperience(ctx context.Context, e *Experience) error {
	oid, err := insertOne(ctx, s.coll("experiences"), e)
	if err != nil {
		return err
	}
	e.ID = oid
	return nil
}

func (s *MongoStore) UpdateExperience(ctx context.Context, id string, e *Experience) (*Experience, error) {
	return updateByID[Experience](ctx, s.coll("experiences"), id, bson.M{
		"company":  e.Company,
		"position": e.Position,
		"start":    e.Start,
		"end":      e.End,
	})
}

func (s *MongoStore) DeleteExperience(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("experiences"), id)
}

func (s *MongoStore) Educations(ctx context.Context) ([]Education, error) {
	return listAll[Education](ctx, s.coll("educations"), nil)
}

func (s *MongoStore) CreateEducation(ctx context.Context, e *Education) error {
	oid, err := insertOne(ctx, s.coll("educations"), e)
	if err != nil {
		return err
	}
	e.ID = oid
	return nil
}

func (s *MongoStore) UpdateEducation(ctx context.Context, id string, e *Education) (*Education, error) {
	return updateByID[Education](ctx, s.coll("educations"), id, bson.M{
		"course":     e.Course,
		"start":      e.Start,
		"end":        e.End,
		"percentage": e.Percentage,
	})
}

func (s *MongoStore) DeleteEducation(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("educations"), id)
}

func (s *MongoStore) Achievements(ctx context.Context) ([]Achievement, error) {
	return listAll[Achievement](ctx, s.coll("achievements"), bson.D{{Key: "year", Value: -1}})
}

func (s *MongoStore) CreateAchievement(ctx context.Context, a *Achievement) error {
	oid, err := insertOne(ctx, s.coll("achievements"), a)
	if err != nil {
		return err
	}
	a.ID = oid
	return nil
}

func (s *MongoStore) UpdateAchievement(ctx context.Context, id string, a *Achievement) (*Achievement, error) {
	return updateByID[Achievement](ctx, s.coll("achievements"), id, bson.M{
		"year":        a.Year,
		"title":       a.Title,
		"description": a.Description,
	})
}

func (s *MongoStore) DeleteAchievement(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("achievements"), id)
}

func (s *MongoStore) Certificates(ctx context.Context) ([]Certificate, error) {
	return listAll[Certificate](ctx, s.coll("certificates"), bson.D{{Key: "timestamp", Value: -1}})
}

func (s *MongoStore) CreateCertificate(ctx context.Context, c *Certificate) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	oid, err := insertOne(ctx, s.coll("certificates"), c)
	if err != nil {
		return err
	}
	c.ID = oid
	return nil
}

func (s *MongoStore) UpdateCertificate(ctx context.Context, id string, c *Certificate) (*Certificate, error) {
	return updateByID[Certificate](ctx, s.coll("certificates"), id, bson.M{
		"title":     c.Title,
		"platform":  c.Platform,
		"timestamp": c.Timestamp,
	})
}

func (s *MongoStore) DeleteCertificate(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll("certificates"), id)
}
