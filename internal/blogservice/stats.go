package blogservice

// Favorite is a blog as reported by FavoriteBlog: every field of its wire
// form except the id.
type Favorite struct {
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	URL      string            `json:"url"`
	Likes    int               `json:"likes"`
	User     OwnerResponse     `json:"user"`
	Comments []CommentResponse `json:"comments"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the most liked blog. Ties go to the earliest one.
func FavoriteBlog(blogs []Blog) (Favorite, bool) {
	if len(blogs) == 0 {
		return Favorite{}, false
	}

	best := 0
	for i := 1; i < len(blogs); i++ {
		if blogs[i].Likes > blogs[best].Likes {
			best = i
		}
	}

	b := NewBlogResponse(&blogs[best])
	return Favorite{
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		User:     b.User,
		Comments: b.Comments,
	}, true
}

// MostBlogs returns the author with the most blogs. Ties go to the author
// that appears first.
func MostBlogs(blogs []Blog) (AuthorCount, bool) {
	if len(blogs) == 0 {
		return AuthorCount{}, false
	}

	counts := make(map[string]int)
	var order []string
	for _, b := range blogs {
		if _, ok := counts[b.Author]; !ok {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}

	top := AuthorCount{Author: order[0], Blogs: counts[order[0]]}
	for _, author := range order[1:] {
		if counts[author] > top.Blogs {
			top = AuthorCount{Author: author, Blogs: counts[author]}
		}
	}

	return top, true
}
