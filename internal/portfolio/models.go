// Package portfolio holds the site content entities and their stores.
package portfolio

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bio is a singleton document: the collection holds at most one record,
// upserted rather than inserted repeatedly.
type Bio struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Resume      string             `bson:"resume,omitempty" json:"resume,omitempty"`
}

// Contact is a singleton document like Bio.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Github    string             `bson:"github,omitempty" json:"github,omitempty"`
	Linkedin  string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string             `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string             `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Github      string             `bson:"github,omitempty" json:"github,omitempty"`
	Live        string             `bson:"live,omitempty" json:"live,omitempty"`
}

type Skill struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Icon string             `bson:"icon" json:"icon"`
}

type Experience struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Company  string             `bson:"company" json:"company"`
	Position string             `bson:"position" json:"position"`
	Start    string             `bson:"start" json:"start"`
	End      string             `bson:"end" json:"end"`
}

type Education struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Course     string             `bson:"course" json:"course"`
	Start      string             `bson:"start" json:"start"`
	End        string             `bson:"end" json:"end"`
	Percentage float64            `bson:"percentage" json:"percentage"`
}

type Achievement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Year        string             `bson:"year" json:"year"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
}

type Certificate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Platform  string             `bson:"platform" json:"platform"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Data is the public aggregate served to visitors.
type Data struct {
	Bio          *Bio          `json:"bio"`
	Contact      *Contact      `json:"contact"`
	Projects     []Project     `json:"projects"`
	Skills       []Skill       `json:"skills"`
	Experiences  []Experience  `json:"experiences"`
	Educations   []Education   `json:"educations"`
	Achievements []Achievement `json:"achievements"`
	Certificates []Certificate `json:"certificates"`
}
