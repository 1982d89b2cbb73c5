package apihelpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PagenatedQuery struct {
	Page   int64
	Limit  int64
	Status string
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PagenatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		return nil, err
	}

	return &PagenatedQuery{
		Page:   page,
		Limit:  limit,
		Status: c.DefaultQuery("status", ""),
	}, nil
}

// PageBounds returns the slice bounds for the query against a list of the
// given length.
func (q *PagenatedQuery) PageBounds(total int) (start, end int) {
	if q.Page < 1 || q.Limit < 1 {
		return 0, total
	}
	start = int((q.Page - 1) * q.Limit)
	if start > total {
		start = total
	}
	end = start + int(q.Limit)
	if end > total {
		end = total
	}
	return start, end
}
