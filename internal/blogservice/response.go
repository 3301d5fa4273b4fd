package blogservice

type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type CommentResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BlogResponse is the wire form of a blog with its owner and comments expanded.
type BlogResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	URL      string            `json:"url"`
	Likes    int               `json:"likes"`
	User     OwnerResponse     `json:"user"`
	Comments []CommentResponse `json:"comments"`
}

func NewBlogResponse(b *Blog) BlogResponse {
	comments := make([]CommentResponse, 0, len(b.Comments))
	for _, c := range b.Comments {
		comments = append(comments, CommentResponse{ID: c.ID.String(), Text: c.Text})
	}

	return BlogResponse{
		ID:     b.ID.String(),
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User: OwnerResponse{
			ID:       b.User.ID.String(),
			Username: b.User.Username,
			Name:     b.User.Name,
		},
		Comments: comments,
	}
}

func NewBlogResponses(blogs []Blog) []BlogResponse {
	res := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		res = append(res, NewBlogResponse(&blogs[i]))
	}
	return res
}

// StatsResponse summarises a list of blogs. Absent aggregates are null.
type StatsResponse struct {
	TotalLikes   int          `json:"totalLikes"`
	FavoriteBlog *Favorite    `json:"favoriteBlog"`
	MostBlogs    *AuthorCount `json:"mostBlogs"`
}

func NewStatsResponse(blogs []Blog) StatsResponse {
	res := StatsResponse{TotalLikes: TotalLikes(blogs)}

	if fav, ok := FavoriteBlog(blogs); ok {
		res.FavoriteBlog = &fav
	}

	if top, ok := MostBlogs(blogs); ok {
		res.MostBlogs = &top
	}

	return res
}
