package tool

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func pageOf(t *testing.T, query string, defaults ...int) (int, int, int) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/rank?"+query, nil)
	return GetPage(c, defaults...)
}

func TestGetPage(t *testing.T) {
	page, offset, limit := pageOf(t, "")
	require.Equal(t, []int{1, 0, 30}, []int{page, offset, limit})

	page, offset, limit = pageOf(t, "page=3&page_size=10")
	require.Equal(t, []int{3, 20, 10}, []int{page, offset, limit})

	_, _, limit = pageOf(t, "page_size=1000", 20, 100)
	require.Equal(t, 100, limit)

	page, offset, _ = pageOf(t, "page=-1")
	require.Equal(t, 1, page)
	require.Zero(t, offset)
}

func TestGetPageHugePageStaysPositive(t *testing.T) {
	page, offset, limit := pageOf(t, "page=9223372036854775807&page_size=30")
	require.Equal(t, 30, limit)
	require.Positive(t, page)
	require.GreaterOrEqual(t, offset, 0)

	start, end := Window(100, offset, limit)
	require.Equal(t, []int{100, 100}, []int{start, end})
}

func TestWindow(t *testing.T) {
	start, end := Window(5, 0, 2)
	require.Equal(t, []int{0, 2}, []int{start, end})
	start, end = Window(5, 4, 2)
	require.Equal(t, []int{4, 5}, []int{start, end})
	start, end = Window(5, 10, 2)
	require.Equal(t, []int{5, 5}, []int{start, end})
	start, end = Window(5, -60, 30)
	require.Equal(t, []int{0, 5}, []int{start, end})
	start, end = Window(5, 3, math.MaxInt)
	require.Equal(t, []int{3, 5}, []int{start, end})
}
