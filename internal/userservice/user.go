package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = common.ErrRecordNotFound
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, version`

	args := []any{
		u.ID,
		u.Username,
		u.Name,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password_hash, created_at, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, username, name, created_at, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns every user in registration order with the blogs each one
// owns, in creation order.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, created_at, version
		FROM users
		ORDER BY seq`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		u := User{Blogs: []BlogSummary{}}
		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.Version)
		if err != nil {
			return nil, err
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	blogQuery := `
		SELECT id, title, author, url, likes, user_id
		FROM blogs
		ORDER BY seq`

	blogRows, err := m.db.QueryContext(ctx, blogQuery)
	if err != nil {
		return nil, err
	}
	defer blogRows.Close()

	for blogRows.Next() {
		var (
			b      BlogSummary
			userID uuid.UUID
		)
		err := blogRows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &userID)
		if err != nil {
			return nil, err
		}

		if i, ok := index[userID]; ok {
			users[i].Blogs = append(users[i].Blogs, b)
		}
	}

	if err := blogRows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *DBModel) deleteUsers(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM users")
	return err
}
