package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext reads page and pageSize (size is accepted as an alias).
func FromContext(c *gin.Context, defaultSize, maxSize int) Query {
	if defaultSize < 1 {
		defaultSize = DefaultSize
	}
	if maxSize < 1 {
		maxSize = MaxSize
	}
	rawSize := c.Query("pageSize")
	if rawSize == "" {
		rawSize = c.Query("size")
	}
	return Normalize(parseIntOr(c.Query("page"), DefaultPage), parseIntOr(rawSize, defaultSize), defaultSize, maxSize)
}

// Normalize clamps page and size into their valid ranges.
func Normalize(page, size, defaultSize, maxSize int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Query{Page: page, Size: size}
}

// Skip is the number of documents before the page window.
func (q Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.Size)
}

// TotalPages returns ceil(total / size).
func (q Query) TotalPages(total int64) int {
	if q.Size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(q.Size) - 1) / int64(q.Size))
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
