package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"quiz-rooms-service/internal/domain"
)

// UserDirectory stores user profiles in a Mongo collection keyed by the
// user-chosen identifier.
type UserDirectory struct {
	collection *mongo.Collection
}

func NewUserDirectory(client *mongo.Client, database string) *UserDirectory {
	return &UserDirectory{collection: client.Database(database).Collection("users")}
}

type userDoc struct {
	ID           string   `bson:"_id"`
	FirstName    string   `bson:"firstname"`
	LastName     string   `bson:"lastname"`
	Avatar       string   `bson:"avatar"`
	Genres       []string `bson:"genres"`
	PasswordHash []byte   `bson:"passwordHash"`
}

func (d *UserDirectory) Authenticate(ctx context.Context, identifier, password string) (domain.User, error) {
	var doc userDoc
	err := d.collection.FindOne(ctx, bson.M{"_id": identifier}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword(doc.PasswordHash, []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return doc.user(), nil
}

func (d *UserDirectory) Create(ctx context.Context, user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	doc := userDoc{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		Genres:       user.Genres,
		PasswordHash: hash,
	}
	if _, err := d.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	return nil
}

func (d *UserDirectory) Update(ctx context.Context, identifier string, fields domain.UserUpdate) error {
	update := bson.M{"$set": bson.M{
		"avatar":    fields.Avatar,
		"genres":    fields.Genres,
		"firstname": fields.FirstName,
		"lastname":  fields.LastName,
	}}
	res, err := d.collection.UpdateOne(ctx, bson.M{"_id": identifier}, update)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (doc userDoc) user() domain.User {
	genres := doc.Genres
	if genres == nil {
		genres = []string{}
	}
	return domain.User{
		ID:        doc.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Name:      doc.FirstName + " " + doc.LastName,
		Avatar:    doc.Avatar,
		Genres:    genres,
	}
}
