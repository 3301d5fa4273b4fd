package userservice

// UserResponse is the wire form of a user. It never carries the password hash.
type UserResponse struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []BlogSummary `json:"blogs"`
}

func NewUserResponse(u *User) UserResponse {
	blogs := u.Blogs
	if blogs == nil {
		blogs = []BlogSummary{}
	}

	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Blogs:    blogs,
	}
}

func NewUserResponses(users []User) []UserResponse {
	res := make([]UserResponse, 0, len(users))
	for i := range users {
		res = append(res, NewUserResponse(&users[i]))
	}
	return res
}
