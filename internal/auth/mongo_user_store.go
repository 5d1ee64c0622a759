package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore keeps user records in a single collection. It shares the
// process-wide client handed in by the caller; it never dials on its own.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(ctx context.Context, cli *mongo.Client, db, coll string) (*MongoUserStore, error) {
	if cli == nil {
		return nil, errors.New("mongo client is nil")
	}
	c := cli.Database(db).Collection(coll)

	// Unique email, and a partial unique index on the admin role so that
	// concurrent first-admin setup resolves to exactly one winner.
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	_, err = c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "role", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"role": string(RoleAdmin)}),
	})
	if err != nil {
		return nil, err
	}

	return &MongoUserStore{coll: c}, nil
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Name     string             `bson:"name"`
	PassHash string             `bson:"pass_hash"`
	Role     string             `bson:"role"`
}

func (d userDoc) toUser() *User {
	return &User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Name:     d.Name,
		PassHash: d.PassHash,
		Role:     Role(d.Role),
	}
}

func (s *MongoUserStore) Add(ctx context.Context, u *User) error {
	return s.insert(ctx, u, RoleUser)
}

func (s *MongoUserStore) AddAdmin(ctx context.Context, u *User) error {
	n, err := s.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAdminExists
	}
	// The count check above can race; the partial unique index on the admin
	// role makes the insert itself the arbiter.
	return s.insert(ctx, u, RoleAdmin)
}

func (s *MongoUserStore) insert(ctx context.Context, u *User, role Role) error {
	u.Role = role
	u.Email = normalizeEmail(u.Email)
	res, err := s.coll.InsertOne(ctx, bson.M{
		"email":     u.Email,
		"name":      u.Name,
		"pass_hash": u.PassHash,
		"role":      string(role),
	})
	if mongo.IsDuplicateKeyError(err) {
		if role == RoleAdmin {
			// Duplicate email or a racing admin insert; either way the
			// record cannot be created.
			if _, findErr := s.FindByEmail(ctx, u.Email); findErr == nil {
				return ErrEmailTaken
			}
			return ErrAdminExists
		}
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter any) (*User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

func (s *MongoUserStore) CountAdmins(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"role": string(RoleAdmin)})
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id, newHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"pass_hash": newHash}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
