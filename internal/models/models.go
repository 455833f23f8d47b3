package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account in the user directory. Every other entity references a
// user through its AuthorID.
type User struct {
	ID             primitive.ObjectID
	Username       string
	HashedPassword string
	DateJoined     time.Time
}

// Freet is a short authored text post, the primary content unit.
type Freet struct {
	ID           primitive.ObjectID
	AuthorID     primitive.ObjectID
	Content      string
	DateCreated  time.Time
	DateModified time.Time
}

// Comment belongs to exactly one freet and one author.
type Comment struct {
	ID           primitive.ObjectID
	AuthorID     primitive.ObjectID
	FreetID      primitive.ObjectID
	Content      string
	DateCreated  time.Time
	DateModified time.Time
}

// Reaction is a like or dislike on a freet. Likes and dislikes share one
// collection; Polarity tells them apart on every query.
type Reaction struct {
	ID           primitive.ObjectID
	AuthorID     primitive.ObjectID
	FreetID      primitive.ObjectID
	Polarity     Polarity
	DateCreated  time.Time
	DateModified time.Time
}

// Favorite is a named URL bookmark owned by a user, independent of freets.
type Favorite struct {
	ID           primitive.ObjectID
	AuthorID     primitive.ObjectID
	Name         string
	URL          string
	DateCreated  time.Time
	DateModified time.Time
}

// Timelimit is the single active timing session for a user.
type Timelimit struct {
	ID          primitive.ObjectID
	AuthorID    primitive.ObjectID
	StartTime   time.Time
	ElapsedTime int64 // milliseconds
}
