package blogservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title" validate:"required"`
	Author   string    `json:"author" validate:"required"`
	URL      string    `json:"url" validate:"required"`
	Likes    int       `json:"likes"`
	UserID   uuid.UUID `json:"user" validate:"required"`
	User     Owner     `json:"-"`
	Comments []Comment `json:"-"`

	CreatedAt time.Time `json:"-"`
	Version   int       `json:"-"`
}

// Owner is the part of the owning user that is listed with a blog.
type Owner struct {
	ID       uuid.UUID
	Username string
	Name     string
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	// min counts runes, so an emoji is one character rather than two.
	Text      string    `json:"text" validate:"required,min=10"`
	BlogID    uuid.UUID `json:"blog"`
	CreatedAt time.Time `json:"-"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m      *BlogModel
	logger *slog.Logger
}
