package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name" validate:"required,notblank"`
	Count *int   `json:"count" validate:"required"`
}

type order struct {
	Items []item `json:"items" validate:"dive"`
}

func TestStruct_OK(t *testing.T) {
	n := 1
	assert.NoError(t, Struct(order{Items: []item{{Name: "a", Count: &n}}}))
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(order{Items: []item{{Name: "   "}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].name must not be blank")
	assert.Contains(t, err.Error(), "items[0].count is required")
}
