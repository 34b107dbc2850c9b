package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_TwelveItemsPageSizeFive(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	page1 := Paginate(items, 1, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page1)

	page3 := Paginate(items, 3, 5)
	assert.Equal(t, []int{11, 12}, page3, "last page is short")

	page4 := Paginate(items, 4, 5)
	assert.Nil(t, page4, "out-of-range page is empty, not an error")
}

func TestPaginate_DegenerateInputs(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Nil(t, Paginate(items, 0, 5), "page numbers are 1-based")
	assert.Nil(t, Paginate(items, -1, 5))
	assert.Nil(t, Paginate(items, 1, 0))
	assert.Nil(t, Paginate([]int(nil), 1, 5))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
}
