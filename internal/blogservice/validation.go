package blogservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateBlog(v *common.Validator, blog *Blog) {
	v.Struct(blog)
}

func validateComment(v *common.Validator, c *Comment) {
	v.Struct(c)
}
