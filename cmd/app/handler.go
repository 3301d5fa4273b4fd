package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), input.Username, input.Name, input.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, userservice.NewUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.GetUsers(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, userservice.NewUserResponses(users), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	login, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, login, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogservice.NewBlogResponses(blogs), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogservice.NewBlogResponse(blog), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBlogRequest takes the blog fields and ignores the ones a client may
// send along. The owner is always the acting user.
type createBlogRequest struct {
	blogservice.CreateBlogRequest
	ID       json.RawMessage `json:"id"`
	User     json.RawMessage `json:"user"`
	UserID   json.RawMessage `json:"userId"`
	Comments json.RawMessage `json:"comments"`
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)
	if user == nil {
		app.errorResponse(w, r, errTokenMissing)
		return
	}

	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.CreateBlog(r.Context(), input.CreateBlogRequest, user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, blogservice.NewBlogResponse(blog), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBlogRequest accepts a whole blog as the client last saw it. Only the
// editable fields are used.
type updateBlogRequest struct {
	blogservice.UpdateBlogRequest
	ID       json.RawMessage `json:"id"`
	User     json.RawMessage `json:"user"`
	Comments json.RawMessage `json:"comments"`
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var owner *uuid.UUID
	if app.config.RequireOwnerOnUpdate {
		user := app.getUserContext(r)
		if user == nil {
			app.errorResponse(w, r, errTokenMissing)
			return
		}
		owner = &user.ID
	}

	var input updateBlogRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), id, input.UpdateBlogRequest, owner)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogservice.NewBlogResponse(blog), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)
	if user == nil {
		app.errorResponse(w, r, errTokenMissing)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusNoContent, nil, nil)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var input createCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.AddComment(r.Context(), id, input.Text)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogservice.NewBlogResponse(blog), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) blogStatsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogservice.NewStatsResponse(blogs), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resetHandler empties the store. It is only routed in the test environment.
func (app *application) resetHandler(w http.ResponseWriter, r *http.Request) {
	err := app.blogService.DeleteBlogs(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.userService.DeleteUsers(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusNoContent, nil, nil)
}
