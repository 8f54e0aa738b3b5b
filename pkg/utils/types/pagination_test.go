package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_GetOffset(t *testing.T) {
	assert.Equal(t, 0, (&Pagination{Page: 1, PageSize: 10}).GetOffset())
	assert.Equal(t, 20, (&Pagination{Page: 3, PageSize: 10}).GetOffset())
	assert.Equal(t, 0, (&Pagination{Page: 0, PageSize: 10}).GetOffset())
}
