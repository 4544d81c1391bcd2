package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code string `json:"code" binding:"required"`
	ID   string `uri:"id" binding:"required,uuid"`
}

func TestToDetailsUsesTagNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sample{ID: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["code"])
	assert.Equal(t, "must be a valid UUID", details["id"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsFallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("EOF")))
}
