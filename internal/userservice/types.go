package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	PasswordMinLength = 3

	UserCacheTime time.Duration = 5 * time.Minute
)

type UserService struct {
	m      *DBModel
	t      *TokenMaker
	mb     common.MessageProducer
	c      *common.Cache
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username" validate:"required,min=3"`
	Name      string        `json:"name"`
	Password  Password      `json:"-"`
	Blogs     []BlogSummary `json:"blogs"`
	CreatedAt time.Time     `json:"-"`
	Version   int           `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// BlogSummary is the part of an owned blog listed with its user.
type BlogSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	URL    string    `json:"url"`
	Likes  int       `json:"likes"`
}

// Login is the outcome of a successful authentication.
type Login struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
