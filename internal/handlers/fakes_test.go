package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// storeFake is an in-memory stand-in for the MongoDB repositories. It mirrors
// the store contracts: dateModified-descending sorts, polarity partitioning,
// boolean delete results, and the same error codes.
type storeFake struct {
	users      map[primitive.ObjectID]*models.User
	freets     map[primitive.ObjectID]*models.Freet
	comments   map[primitive.ObjectID]*models.Comment
	reactions  map[primitive.ObjectID]*models.Reaction
	favorites  map[primitive.ObjectID]*models.Favorite
	timelimits map[primitive.ObjectID]*models.Timelimit
}

func newStoreFake() *storeFake {
	return &storeFake{
		users:      make(map[primitive.ObjectID]*models.User),
		freets:     make(map[primitive.ObjectID]*models.Freet),
		comments:   make(map[primitive.ObjectID]*models.Comment),
		reactions:  make(map[primitive.ObjectID]*models.Reaction),
		favorites:  make(map[primitive.ObjectID]*models.Favorite),
		timelimits: make(map[primitive.ObjectID]*models.Timelimit),
	}
}

func (f *storeFake) Ping(ctx context.Context) error { return nil }

var (
	_ UserStore      = (*storeFake)(nil)
	_ FreetStore     = (*storeFake)(nil)
	_ CommentStore   = (*storeFake)(nil)
	_ ReactionStore  = (*storeFake)(nil)
	_ FavoriteStore  = (*storeFake)(nil)
	_ TimelimitStore = (*storeFake)(nil)
)

// --- UserStore ---

func (f *storeFake) CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return nil, utils.NewAppError(utils.ErrUserAlreadyExists, "Username already taken: "+username, nil)
		}
	}
	user := &models.User{
		ID:             primitive.NewObjectID(),
		Username:       username,
		HashedPassword: hashedPassword,
		DateJoined:     time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *storeFake) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.Hex())
	}
	return user, nil
}

func (f *storeFake) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, utils.NewUserNotFoundError(username)
}

func (f *storeFake) UpdateUser(ctx context.Context, id primitive.ObjectID, username, hashedPassword string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.Hex())
	}
	if username != "" {
		user.Username = username
	}
	if hashedPassword != "" {
		user.HashedPassword = hashedPassword
	}
	return user, nil
}

func (f *storeFake) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

// --- FreetStore ---

func (f *storeFake) CreateFreet(ctx context.Context, authorID primitive.ObjectID, content string) (*models.Freet, error) {
	now := time.Now()
	freet := &models.Freet{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		Content:      content,
		DateCreated:  now,
		DateModified: now,
	}
	f.freets[freet.ID] = freet
	return freet, nil
}

func (f *storeFake) GetFreet(ctx context.Context, id primitive.ObjectID) (*models.Freet, error) {
	freet, ok := f.freets[id]
	if !ok {
		return nil, utils.NewFreetNotFoundError(id.Hex())
	}
	return freet, nil
}

func (f *storeFake) AllFreets(ctx context.Context) ([]*models.Freet, error) {
	freets := make([]*models.Freet, 0, len(f.freets))
	for _, freet := range f.freets {
		freets = append(freets, freet)
	}
	sort.Slice(freets, func(i, j int) bool {
		return freets[i].DateModified.After(freets[j].DateModified)
	})
	return freets, nil
}

func (f *storeFake) FreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Freet, error) {
	var freets []*models.Freet
	for _, freet := range f.freets {
		if freet.AuthorID == authorID {
			freets = append(freets, freet)
		}
	}
	return freets, nil
}

func (f *storeFake) FreetsByUsername(ctx context.Context, username string) ([]*models.Freet, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return f.FreetsByAuthor(ctx, author.ID)
}

func (f *storeFake) UpdateFreet(ctx context.Context, id primitive.ObjectID, content string) (*models.Freet, error) {
	freet, ok := f.freets[id]
	if !ok {
		return nil, utils.NewFreetNotFoundError(id.Hex())
	}
	freet.Content = content
	freet.DateModified = time.Now()
	return freet, nil
}

func (f *storeFake) DeleteFreet(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.freets[id]; !ok {
		return false, nil
	}
	delete(f.freets, id)
	return true, nil
}

func (f *storeFake) DeleteFreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	for id, freet := range f.freets {
		if freet.AuthorID == authorID {
			delete(f.freets, id)
		}
	}
	return nil
}

// --- CommentStore ---

func (f *storeFake) AddComment(ctx context.Context, authorID, freetID primitive.ObjectID, content string) (*models.Comment, error) {
	now := time.Now()
	comment := &models.Comment{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		FreetID:      freetID,
		Content:      content,
		DateCreated:  now,
		DateModified: now,
	}
	f.comments[comment.ID] = comment
	return comment, nil
}

func (f *storeFake) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+id.Hex(), nil)
	}
	return comment, nil
}

func (f *storeFake) AllComments(ctx context.Context) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(f.comments))
	for _, comment := range f.comments {
		comments = append(comments, comment)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].DateModified.After(comments[j].DateModified)
	})
	return comments, nil
}

func (f *storeFake) CommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range f.comments {
		if comment.AuthorID == authorID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *storeFake) CommentsByUsername(ctx context.Context, username string) ([]*models.Comment, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return f.CommentsByAuthor(ctx, author.ID)
}

func (f *storeFake) CommentsByFreet(ctx context.Context, freetID primitive.ObjectID) ([]*models.Comment, error) {
	if _, err := f.GetFreet(ctx, freetID); err != nil {
		return nil, err
	}
	var comments []*models.Comment
	for _, comment := range f.comments {
		if comment.FreetID == freetID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *storeFake) CommentByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range f.comments {
		if comment.AuthorID == authorID && comment.FreetID == freetID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *storeFake) UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+id.Hex(), nil)
	}
	comment.Content = content
	comment.DateModified = time.Now()
	return comment, nil
}

func (f *storeFake) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.comments[id]; !ok {
		return false, nil
	}
	delete(f.comments, id)
	return true, nil
}

func (f *storeFake) DeleteCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	for id, comment := range f.comments {
		if comment.AuthorID == authorID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *storeFake) CountCommentsOnFreet(ctx context.Context, freetID primitive.ObjectID) (int, error) {
	comments, err := f.CommentsByFreet(ctx, freetID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

// --- ReactionStore ---

func (f *storeFake) AddReaction(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error) {
	now := time.Now()
	reaction := &models.Reaction{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		FreetID:      freetID,
		Polarity:     polarity,
		DateCreated:  now,
		DateModified: now,
	}
	f.reactions[reaction.ID] = reaction
	return reaction, nil
}

func (f *storeFake) GetReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error) {
	reaction, ok := f.reactions[id]
	if !ok || reaction.Polarity != polarity {
		return nil, utils.NewAppError(utils.ErrReactionNotFound, "Reaction not found: "+id.Hex(), nil)
	}
	return reaction, nil
}

func (f *storeFake) AllReactions(ctx context.Context, polarity models.Polarity) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	for _, reaction := range f.reactions {
		if reaction.Polarity == polarity {
			reactions = append(reactions, reaction)
		}
	}
	sort.Slice(reactions, func(i, j int) bool {
		return reactions[i].DateModified.After(reactions[j].DateModified)
	})
	return reactions, nil
}

func (f *storeFake) ReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	for _, reaction := range f.reactions {
		if reaction.AuthorID == authorID && reaction.Polarity == polarity {
			reactions = append(reactions, reaction)
		}
	}
	return reactions, nil
}

func (f *storeFake) ReactionsByUsername(ctx context.Context, username string, polarity models.Polarity) ([]*models.Reaction, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return f.ReactionsByAuthor(ctx, author.ID, polarity)
}

func (f *storeFake) ReactionsByFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	if _, err := f.GetFreet(ctx, freetID); err != nil {
		return nil, err
	}
	var reactions []*models.Reaction
	for _, reaction := range f.reactions {
		if reaction.FreetID == freetID && reaction.Polarity == polarity {
			reactions = append(reactions, reaction)
		}
	}
	return reactions, nil
}

func (f *storeFake) ReactionByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	for _, reaction := range f.reactions {
		if reaction.AuthorID == authorID && reaction.FreetID == freetID && reaction.Polarity == polarity {
			reactions = append(reactions, reaction)
		}
	}
	return reactions, nil
}

func (f *storeFake) DeleteReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (bool, error) {
	reaction, ok := f.reactions[id]
	if !ok || reaction.Polarity != polarity {
		return false, nil
	}
	delete(f.reactions, id)
	return true, nil
}

func (f *storeFake) DeleteReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) error {
	for id, reaction := range f.reactions {
		if reaction.AuthorID == authorID && reaction.Polarity == polarity {
			delete(f.reactions, id)
		}
	}
	return nil
}

func (f *storeFake) CountReactionsOnFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) (int, error) {
	reactions, err := f.ReactionsByFreet(ctx, freetID, polarity)
	if err != nil {
		return 0, err
	}
	return len(reactions), nil
}

// --- FavoriteStore ---

func (f *storeFake) AddFavorite(ctx context.Context, authorID primitive.ObjectID, name, url string) (*models.Favorite, error) {
	now := time.Now()
	favorite := &models.Favorite{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		Name:         name,
		URL:          url,
		DateCreated:  now,
		DateModified: now,
	}
	f.favorites[favorite.ID] = favorite
	return favorite, nil
}

func (f *storeFake) GetFavorite(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	favorite, ok := f.favorites[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrFavoriteNotFound, "Favorite not found: "+id.Hex(), nil)
	}
	return favorite, nil
}

func (f *storeFake) FavoritesByUsername(ctx context.Context, username string) ([]*models.Favorite, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	var favorites []*models.Favorite
	for _, favorite := range f.favorites {
		if favorite.AuthorID == author.ID {
			favorites = append(favorites, favorite)
		}
	}
	return favorites, nil
}

func (f *storeFake) DeleteFavorite(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.favorites[id]; !ok {
		return false, nil
	}
	delete(f.favorites, id)
	return true, nil
}

func (f *storeFake) DeleteFavoritesByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	for id, favorite := range f.favorites {
		if favorite.AuthorID == authorID {
			delete(f.favorites, id)
		}
	}
	return nil
}

// --- TimelimitStore ---

func (f *storeFake) StartTimelimit(ctx context.Context, username string, startTime time.Time, elapsedTime int64) (*models.Timelimit, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, timelimit := range f.timelimits {
		if timelimit.AuthorID == author.ID {
			timelimit.StartTime = startTime
			timelimit.ElapsedTime = elapsedTime
			return timelimit, nil
		}
	}
	timelimit := &models.Timelimit{
		ID:          primitive.NewObjectID(),
		AuthorID:    author.ID,
		StartTime:   startTime,
		ElapsedTime: elapsedTime,
	}
	f.timelimits[timelimit.ID] = timelimit
	return timelimit, nil
}

func (f *storeFake) GetTimelimit(ctx context.Context, username string) (*models.Timelimit, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, timelimit := range f.timelimits {
		if timelimit.AuthorID == author.ID {
			return timelimit, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrTimelimitNotFound, "Timelimit not found for author: "+author.ID.Hex(), nil)
}

func (f *storeFake) DeleteTimelimit(ctx context.Context, username string) (bool, error) {
	author, err := f.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	for id, timelimit := range f.timelimits {
		if timelimit.AuthorID == author.ID {
			delete(f.timelimits, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *storeFake) DeleteTimelimitsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	for id, timelimit := range f.timelimits {
		if timelimit.AuthorID == authorID {
			delete(f.timelimits, id)
		}
	}
	return nil
}

// newTestServer wires a Server to the fake store with a throwaway session
// secret and a silenced logger.
func newTestServer() (*Server, *storeFake) {
	fake := newStoreFake()
	server := &Server{
		Users:          fake,
		Freets:         fake,
		Comments:       fake,
		Reactions:      fake,
		Favorites:      fake,
		Timelimits:     fake,
		Sessions:       middleware.NewSessionManager("test-secret"),
		Metrics:        utils.NewMetricsCollector(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:             fake,
		RequestTimeout: 5 * time.Second,
	}
	return server, fake
}
