package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Username       string             `bson:"username"`
	HashedPassword string             `bson:"hashedPassword"`
	DateJoined     time.Time          `bson:"dateJoined"`
}

func userDocumentToModel(doc *UserDocument) *models.User {
	return &models.User{
		ID:             doc.ID,
		Username:       doc.Username,
		HashedPassword: doc.HashedPassword,
		DateJoined:     doc.DateJoined,
	}
}

// CreateUser inserts a new user. Username uniqueness is enforced by the
// unique index on the collection.
func (m *MongoDB) CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	doc := UserDocument{
		ID:             primitive.NewObjectID(),
		Username:       username,
		HashedPassword: hashedPassword,
		DateJoined:     time.Now(),
	}

	if _, err := m.Users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewAppError(utils.ErrUserAlreadyExists, "Username already taken: "+username, err)
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return userDocumentToModel(&doc), nil
}

// GetUserByID retrieves a user by their id
func (m *MongoDB) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return userDocumentToModel(&doc), nil
}

// GetUserByUsername resolves a username to its user record. This is the
// author-resolution lookup every other store leans on.
func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return userDocumentToModel(&doc), nil
}

// UpdateUser replaces the username and/or password of an existing user.
// Empty arguments leave the corresponding field untouched.
func (m *MongoDB) UpdateUser(ctx context.Context, id primitive.ObjectID, username, hashedPassword string) (*models.User, error) {
	set := bson.M{}
	if username != "" {
		set["username"] = username
	}
	if hashedPassword != "" {
		set["hashedPassword"] = hashedPassword
	}
	if len(set) == 0 {
		return m.GetUserByID(ctx, id)
	}

	result, err := m.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewAppError(utils.ErrUserAlreadyExists, "Username already taken: "+username, err)
		}
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewUserNotFoundError(id.Hex())
	}

	return m.GetUserByID(ctx, id)
}

// DeleteUser removes a user. Returns whether a delete occurred. Cleanup of
// the user's authored records is the caller's responsibility.
func (m *MongoDB) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := m.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// EnsureUserIndexes creates required indexes for the users collection
func (m *MongoDB) EnsureUserIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.Users.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	return nil
}
