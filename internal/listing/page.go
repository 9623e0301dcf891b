package listing

import (
	"math"
	"net/url"
	"strconv"

	"github.com/staybnb-project/backend/internal/database/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page and limit, falling back to the defaults for absent,
// non-numeric or non-positive values. maxLimit <= 0 disables the cap. The
// page number is clamped so that Offset cannot overflow.
func ParsePage(query url.Values, maxLimit int) Page {
	p := Page{
		Number: positiveInt(query.Get("page"), DefaultPage),
		Limit:  positiveInt(query.Get("limit"), DefaultLimit),
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Number > maxPage {
		p.Number = maxPage
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

func (p Page) TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + p.Limit - 1) / p.Limit
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PageResult is the envelope of the paginated read modes.
type PageResult struct {
	Page       int            `json:"page"`
	Data       []*models.Room `json:"data"`
	TotalCount int            `json:"totalCount"`
	TotalPage  int            `json:"totalPage"`
}
