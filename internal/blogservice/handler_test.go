package blogservice

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/common"
)

// setupTestUser inserts a user directly; blogs only need its id.
func setupTestUser(t *testing.T, db *sql.DB, username string) uuid.UUID {
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO users (id, username, name, password_hash) VALUES ($1, $2, $3, $4)`, id, username, "Test "+username, []byte("hash"))
	require.NoError(t, err)
	return id
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, uuid.UUID) {
	db := common.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userID := setupTestUser(t, db, "root")

	t.Cleanup(func() {
		_, err := db.Exec("DELETE FROM blogs")
		assert.NoError(t, err)
	})

	return NewBlogService(db, logger), db, userID
}

func intptr(i int) *int {
	return &i
}

func strptr(s string) *string {
	return &s
}

func countBlogs(t *testing.T, db *sql.DB) int {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestCreateBlog(t *testing.T) {
	s, db, userID := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         CreateBlogRequest
		userID      uuid.UUID
		expectedErr error
		likes       int
	}{
		{
			name:   "valid blog without likes",
			req:    CreateBlogRequest{Title: "test", Author: "test", URL: "test"},
			userID: userID,
			likes:  0,
		},
		{
			name:   "valid blog with likes",
			req:    CreateBlogRequest{Title: "liked", Author: "test", URL: "test", Likes: intptr(7)},
			userID: userID,
			likes:  7,
		},
		{
			name:        "missing title",
			req:         CreateBlogRequest{Author: "test", URL: "test"},
			userID:      userID,
			expectedErr: common.ValidationError{},
		},
		{
			name:        "missing url",
			req:         CreateBlogRequest{Title: "test", Author: "test"},
			userID:      userID,
			expectedErr: common.ValidationError{},
		},
		{
			name:        "unknown user",
			req:         CreateBlogRequest{Title: "test", Author: "test", URL: "test"},
			userID:      uuid.New(),
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			before := countBlogs(t, db)

			blog, err := s.CreateBlog(ctx, tc.req, tc.userID)

			switch tc.expectedErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tc.likes, blog.Likes)
				assert.Equal(t, userID, blog.User.ID)
				assert.Equal(t, "root", blog.User.Username)
				assert.Empty(t, blog.Comments)
				assert.Equal(t, before+1, countBlogs(t, db))
			case common.ValidationError:
				assert.ErrorAs(t, err, &common.ValidationError{})
				assert.Equal(t, before, countBlogs(t, db))
			default:
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, before, countBlogs(t, db))
			}
		})
	}
}

func TestGetBlogs(t *testing.T) {
	s, _, userID := setupTestEnvironment(t)
	ctx := context.Background()

	blogs, err := s.GetBlogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, blogs)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := s.CreateBlog(ctx, CreateBlogRequest{Title: title, Author: "author", URL: "url"}, userID)
		require.NoError(t, err)
	}

	blogs, err = s.GetBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	for i, title := range titles {
		assert.Equal(t, title, blogs[i].Title)
		assert.Equal(t, "root", blogs[i].User.Username)
		assert.NotNil(t, blogs[i].Comments)
	}
}

func TestGetBlogByID(t *testing.T) {
	s, _, userID := setupTestEnvironment(t)
	ctx := context.Background()

	created, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
	require.NoError(t, err)

	blog, err := s.GetBlogByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, blog.ID)

	_, err = s.GetBlogByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateBlog(t *testing.T) {
	s, db, userID := setupTestEnvironment(t)
	ctx := context.Background()
	otherID := setupTestUser(t, db, "hellas")

	created, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		id          uuid.UUID
		req         UpdateBlogRequest
		owner       *uuid.UUID
		expectedErr error
		check       func(t *testing.T, b *Blog)
	}{
		{
			name: "likes only",
			id:   created.ID,
			req:  UpdateBlogRequest{Likes: intptr(10)},
			check: func(t *testing.T, b *Blog) {
				assert.Equal(t, 10, b.Likes)
				assert.Equal(t, "title", b.Title)
			},
		},
		{
			name:  "owner replaces fields",
			id:    created.ID,
			req:   UpdateBlogRequest{Title: strptr("new title"), URL: strptr("new url")},
			owner: &userID,
			check: func(t *testing.T, b *Blog) {
				assert.Equal(t, "new title", b.Title)
				assert.Equal(t, "new url", b.URL)
				assert.Equal(t, 10, b.Likes)
			},
		},
		{
			name:        "non owner",
			id:          created.ID,
			req:         UpdateBlogRequest{Likes: intptr(0)},
			owner:       &otherID,
			expectedErr: ErrUpdateForbidden,
		},
		{
			name:        "empty title",
			id:          created.ID,
			req:         UpdateBlogRequest{Title: strptr("")},
			expectedErr: common.ValidationError{},
		},
		{
			name:        "unknown blog",
			id:          uuid.New(),
			req:         UpdateBlogRequest{Likes: intptr(1)},
			expectedErr: ErrRecordNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blog, err := s.UpdateBlog(ctx, tc.id, tc.req, tc.owner)

			switch tc.expectedErr.(type) {
			case nil:
				require.NoError(t, err)
				tc.check(t, blog)
			case common.ValidationError:
				assert.ErrorAs(t, err, &common.ValidationError{})
			default:
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestUpdateBlogEditConflict(t *testing.T) {
	s, _, userID := setupTestEnvironment(t)
	ctx := context.Background()

	created, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
	require.NoError(t, err)

	stale := *created
	_, err = s.UpdateBlog(ctx, created.ID, UpdateBlogRequest{Likes: intptr(1)}, nil)
	require.NoError(t, err)

	stale.Likes = 2
	err = s.m.updateBlog(ctx, &stale)
	assert.ErrorIs(t, err, ErrEditConflict)
}

func TestDeleteBlog(t *testing.T) {
	s, db, userID := setupTestEnvironment(t)
	ctx := context.Background()
	otherID := setupTestUser(t, db, "hellas")

	created, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
	require.NoError(t, err)
	_, err = s.AddComment(ctx, created.ID, "a comment on the blog")
	require.NoError(t, err)

	err = s.DeleteBlog(ctx, created.ID, otherID)
	assert.ErrorIs(t, err, ErrDeleteForbidden)
	assert.Equal(t, 1, countBlogs(t, db))

	err = s.DeleteBlog(ctx, uuid.New(), userID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeleteBlog(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, countBlogs(t, db))

	var comments int
	err = db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&comments)
	require.NoError(t, err)
	assert.Equal(t, 0, comments)
}

func TestAddComment(t *testing.T) {
	s, _, userID := setupTestEnvironment(t)
	ctx := context.Background()

	created, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
	require.NoError(t, err)

	blog, err := s.AddComment(ctx, created.ID, "first comment here")
	require.NoError(t, err)
	require.Len(t, blog.Comments, 1)

	blog, err = s.AddComment(ctx, created.ID, "second comment<script>alert(1)</script>")
	require.NoError(t, err)
	require.Len(t, blog.Comments, 2)
	assert.Equal(t, "first comment here", blog.Comments[0].Text)
	assert.Equal(t, "second comment", blog.Comments[1].Text)

	_, err = s.AddComment(ctx, created.ID, "short")
	assert.ErrorAs(t, err, &common.ValidationError{})

	_, err = s.AddComment(ctx, uuid.New(), "a comment on nothing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	blogs, err := s.GetBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Len(t, blogs[0].Comments, 2)

	res := NewBlogResponse(&blogs[0])
	assert.Equal(t, created.ID.String(), res.ID)
	assert.Equal(t, userID.String(), res.User.ID)
	assert.Len(t, res.Comments, 2)
}

func TestDeleteBlogs(t *testing.T) {
	s, db, userID := setupTestEnvironment(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateBlog(ctx, CreateBlogRequest{Title: "title", Author: "author", URL: "url"}, userID)
		require.NoError(t, err)
	}

	err := s.DeleteBlogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, countBlogs(t, db))
}
