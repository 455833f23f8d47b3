// Package api shapes persisted records into the wire form the frontend
// expects: ids as hex strings, the author relation replaced by a username,
// dates rendered in a fixed human-readable format. Formatters are pure; the
// caller resolves the author before formatting.
package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
)

// UserResponse is the externally visible shape of a user.
type UserResponse struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	DateJoined string `json:"dateJoined"`
}

// FreetResponse is the externally visible shape of a freet.
type FreetResponse struct {
	ID           string `json:"_id"`
	Author       string `json:"author"`
	Content      string `json:"content"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

// CommentResponse is the externally visible shape of a comment. The freet
// reference stays an id string rather than a nested response.
type CommentResponse struct {
	ID           string `json:"_id"`
	Author       string `json:"author"`
	Freet        string `json:"freet"`
	Content      string `json:"content"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

// ReactionResponse is the externally visible shape of a like or dislike.
type ReactionResponse struct {
	ID           string `json:"_id"`
	Author       string `json:"author"`
	Freet        string `json:"freet"`
	Dislike      bool   `json:"dislike"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

// FavoriteResponse is the externally visible shape of a favorite.
type FavoriteResponse struct {
	ID           string `json:"_id"`
	Author       string `json:"author"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

// TimelimitResponse is the externally visible shape of a timing session.
type TimelimitResponse struct {
	ID          string `json:"_id"`
	Author      string `json:"author"`
	StartTime   string `json:"startTime"`
	ElapsedTime int64  `json:"elapsedTime"`
}

// FormatDate encodes a date as an unambiguous string, e.g.
// "April 3rd 2022, 2:05:09 pm".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %s %d, %s",
		t.Format("January"),
		ordinalDay(t.Day()),
		t.Year(),
		t.Format("3:04:05 pm"),
	)
}

func ordinalDay(day int) string {
	suffix := "th"
	if day < 11 || day > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID.Hex(),
		Username:   user.Username,
		DateJoined: FormatDate(user.DateJoined),
	}
}

func NewFreetResponse(freet *models.Freet, authorUsername string) FreetResponse {
	return FreetResponse{
		ID:           freet.ID.Hex(),
		Author:       authorUsername,
		Content:      freet.Content,
		DateCreated:  FormatDate(freet.DateCreated),
		DateModified: FormatDate(freet.DateModified),
	}
}

func NewCommentResponse(comment *models.Comment, authorUsername string) CommentResponse {
	return CommentResponse{
		ID:           comment.ID.Hex(),
		Author:       authorUsername,
		Freet:        comment.FreetID.Hex(),
		Content:      comment.Content,
		DateCreated:  FormatDate(comment.DateCreated),
		DateModified: FormatDate(comment.DateModified),
	}
}

func NewReactionResponse(reaction *models.Reaction, authorUsername string) ReactionResponse {
	return ReactionResponse{
		ID:           reaction.ID.Hex(),
		Author:       authorUsername,
		Freet:        reaction.FreetID.Hex(),
		Dislike:      reaction.Polarity.IsDislike(),
		DateCreated:  FormatDate(reaction.DateCreated),
		DateModified: FormatDate(reaction.DateModified),
	}
}

func NewFavoriteResponse(favorite *models.Favorite, authorUsername string) FavoriteResponse {
	return FavoriteResponse{
		ID:           favorite.ID.Hex(),
		Author:       authorUsername,
		Name:         favorite.Name,
		URL:          favorite.URL,
		DateCreated:  FormatDate(favorite.DateCreated),
		DateModified: FormatDate(favorite.DateModified),
	}
}

func NewTimelimitResponse(timelimit *models.Timelimit, authorUsername string) TimelimitResponse {
	return TimelimitResponse{
		ID:          timelimit.ID.Hex(),
		Author:      authorUsername,
		StartTime:   FormatDate(timelimit.StartTime),
		ElapsedTime: timelimit.ElapsedTime,
	}
}
