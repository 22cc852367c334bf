package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"page below one", 0, 10, 0, 10},
		{"size too large", 2, 500, DefaultPageSize, DefaultPageSize},
		{"size zero", 2, 0, DefaultPageSize, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, int64(45), info.Total)
	assert.Equal(t, 3, info.TotalPages)

	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	page, size := ParsePaginationParams(newQueryContext("page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	page, size = ParsePaginationParams(newQueryContext("size=5"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 5, size)

	page, size = ParsePaginationParams(newQueryContext("page=-1&limit=abc"))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 10, ParseLimit(newQueryContext(""), 10, 100))
	assert.Equal(t, 10, ParseLimit(newQueryContext("limit=abc"), 10, 100))
	assert.Equal(t, 10, ParseLimit(newQueryContext("limit=0"), 10, 100))
	assert.Equal(t, 25, ParseLimit(newQueryContext("limit=25"), 10, 100))
	assert.Equal(t, 100, ParseLimit(newQueryContext("limit=1000"), 10, 100))
}
