package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDeleteForbidden = errors.New("blogs can only be deleted by the creator")
	ErrUpdateForbidden = errors.New("blogs can only be updated by the creator")
)

func NewBlogService(db *sql.DB, logger *slog.Logger) *BlogService {
	return &BlogService{m: newBlogModel(db), logger: logger}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogRequest holds the fields to replace. Nil fields keep their stored value.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// CreateBlog stores a new blog owned by userID and returns it expanded.
func (s *BlogService) CreateBlog(ctx context.Context, req CreateBlogRequest, userID uuid.UUID) (*Blog, error) {
	blog := Blog{
		ID:     uuid.New(),
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		UserID: userID,
	}

	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator("Blog")
	validateBlog(v, &blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogs returns every blog with its owner and comments.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

func (s *BlogService) GetBlogByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	return s.m.getBlogByID(ctx, id)
}

// UpdateBlog replaces the fields present in req and returns the blog as stored.
// When owner is not nil only that user may update the blog.
func (s *BlogService) UpdateBlog(ctx context.Context, id uuid.UUID, req UpdateBlogRequest, owner *uuid.UUID) (*Blog, error) {
	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if owner != nil && *owner != blog.UserID {
		s.logger.Info("blog update refused", slog.String("blog_id", id.String()), slog.String("user_id", owner.String()))
		return nil, ErrUpdateForbidden
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator("Blog")
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, id)
}

// DeleteBlog removes the blog if userID owns it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID uuid.UUID) error {
	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != userID {
		s.logger.Info("blog delete refused", slog.String("blog_id", id.String()), slog.String("user_id", userID.String()))
		return ErrDeleteForbidden
	}

	return s.m.deleteBlog(ctx, id, userID)
}

// AddComment appends a comment to the blog and returns the blog expanded.
func (s *BlogService) AddComment(ctx context.Context, blogID uuid.UUID, text string) (*Blog, error) {
	c := Comment{
		ID:     uuid.New(),
		Text:   stripScripts(text),
		BlogID: blogID,
	}

	v := common.NewValidator("Comment")
	validateComment(v, &c)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insertComment(ctx, &c)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, blogID)
}

// DeleteBlogs removes every blog and comment.
func (s *BlogService) DeleteBlogs(ctx context.Context) error {
	return s.m.deleteBlogs(ctx)
}
