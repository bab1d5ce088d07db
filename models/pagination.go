package models

import (
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// PostsPerPage is the fixed page size shared by every listing surface.
const PostsPerPage = 10

type Page struct {
	Posts   []Post
	Number  int
	Total   int64
	Pages   int
	HasNext bool
	HasPrev bool
}

// PaginatePosts runs the listing query and slices it into 1-indexed pages.
// A page past the end comes back empty with HasNext=false; page numbers
// below 1 are treated as page 1.
func PaginatePosts(tx *gorm.DB, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	result := Page{Number: page, Posts: []Post{}}
	if err := tx.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}
	result.Pages = int((result.Total + PostsPerPage - 1) / PostsPerPage)
	result.HasNext = int64(page*PostsPerPage) < result.Total
	result.HasPrev = page > 1

	err := tx.
		Offset(PostsPerPage * (page - 1)).
		Limit(PostsPerPage).
		Find(&result.Posts).Error
	return result, err
}

// PageNumbers is used by templates to render the pager links.
func (p *Page) PageNumbers() []int {
	return lo.RangeFrom(1, p.Pages)
}

func (p *Page) NextNumber() int {
	return p.Number + 1
}

func (p *Page) PrevNumber() int {
	return p.Number - 1
}
