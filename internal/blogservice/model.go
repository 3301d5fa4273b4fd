package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrRecordNotFound = common.ErrRecordNotFound
	ErrUserForeignKey = errors.New("user does not exist")
	ErrEditConflict   = errors.New("edit conflict")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (id, title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version`

	args := []any{blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.CreatedAt, &blog.Version)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

const selectBlogs = `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.version, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id`

func scanBlog(row interface{ Scan(...any) error }) (Blog, error) {
	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID, &b.CreatedAt, &b.Version, &b.User.Username, &b.User.Name)
	b.User.ID = b.UserID
	b.Comments = []Comment{}
	return b, err
}

// getBlogByID returns the blog with its owner and comments.
func (m *BlogModel) getBlogByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	query := selectBlogs + `
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	comments, err := m.getComments(ctx, &id)
	if err != nil {
		return nil, err
	}
	blog.Comments = append(blog.Comments, comments[id]...)

	return &blog, nil
}

// getBlogs returns every blog in creation order with its owner and comments.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := selectBlogs + `
		ORDER BY b.seq`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments, err := m.getComments(ctx, nil)
	if err != nil {
		return nil, err
	}

	for i := range blogs {
		blogs[i].Comments = append(blogs[i].Comments, comments[blogs[i].ID]...)
	}

	return blogs, nil
}

// getComments groups comments by blog in insertion order. A nil blogID loads
// the comments of every blog.
func (m *BlogModel) getComments(ctx context.Context, blogID *uuid.UUID) (map[uuid.UUID][]Comment, error) {
	query := `
		SELECT id, text, blog_id, created_at
		FROM comments
		WHERE ($1::uuid IS NULL OR blog_id = $1)
		ORDER BY seq`

	var arg any
	if blogID != nil {
		arg = *blogID
	}

	rows, err := m.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[uuid.UUID][]Comment)
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Text, &c.BlogID, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments[c.BlogID] = append(comments[c.BlogID], c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// updateBlog writes the blog back if nobody changed it since it was read.
func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID uuid.UUID) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, text, blog_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := m.db.QueryRowContext(ctx, query, c.ID, c.Text, c.BlogID).Scan(&c.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_blog_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// deleteBlogs removes every blog; their comments go with them.
func (m *BlogModel) deleteBlogs(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM blogs")
	return err
}
