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
)

// FavoriteDocument represents favorite data in MongoDB
type FavoriteDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	Name         string             `bson:"name"`
	URL          string             `bson:"url"`
	DateCreated  time.Time          `bson:"dateCreated"`
	DateModified time.Time          `bson:"dateModified"`
}

func favoriteDocumentToModel(doc *FavoriteDocument) *models.Favorite {
	return &models.Favorite{
		ID:           doc.ID,
		AuthorID:     doc.AuthorID,
		Name:         doc.Name,
		URL:          doc.URL,
		DateCreated:  doc.DateCreated,
		DateModified: doc.DateModified,
	}
}

// AddFavorite inserts a named URL bookmark for the given author.
func (m *MongoDB) AddFavorite(ctx context.Context, authorID primitive.ObjectID, name, url string) (*models.Favorite, error) {
	now := time.Now()
	doc := FavoriteDocument{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		Name:         name,
		URL:          url,
		DateCreated:  now,
		DateModified: now,
	}

	if _, err := m.Favorites.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %v", err)
	}

	return favoriteDocumentToModel(&doc), nil
}

// GetFavorite retrieves a favorite by id
func (m *MongoDB) GetFavorite(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	var doc FavoriteDocument
	err := m.Favorites.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrFavoriteNotFound, "Favorite not found: "+id.Hex(), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %v", err)
	}
	return favoriteDocumentToModel(&doc), nil
}

// FavoritesByUsername resolves the username via the user directory first.
func (m *MongoDB) FavoritesByUsername(ctx context.Context, username string) ([]*models.Favorite, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	cursor, err := m.Favorites.Find(ctx, bson.M{"authorId": author.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites by author: %v", err)
	}

	docs, err := decodeAll[FavoriteDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}

	favorites := make([]*models.Favorite, len(docs))
	for i := range docs {
		favorites[i] = favoriteDocumentToModel(&docs[i])
	}
	return favorites, nil
}

// DeleteFavorite removes a favorite. Returns whether a delete occurred.
func (m *MongoDB) DeleteFavorite(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := m.Favorites.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteFavoritesByAuthor bulk-removes all favorites by an author. Used when
// a user account is deleted.
func (m *MongoDB) DeleteFavoritesByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := m.Favorites.DeleteMany(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return fmt.Errorf("failed to delete favorites by author: %v", err)
	}
	return nil
}

// EnsureFavoriteIndexes creates required indexes for the favorites collection
func (m *MongoDB) EnsureFavoriteIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
	}

	_, err := m.Favorites.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create favorite indexes: %v", err)
	}

	return nil
}
