package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"required,gte=18"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestToDetails_FieldMessages(t *testing.T) {
	v := validator.New()

	err := v.Struct(createPayload{Email: "nope", Age: 12, Password: "abc"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["Email"])
	assert.Equal(t, "must be greater than or equal 18", details["Age"])
	assert.Equal(t, "must be at least 6 characters long", details["Password"])
}

func TestToDetails_RequiredFields(t *testing.T) {
	v := validator.New()

	err := v.Struct(createPayload{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["Email"])
	assert.Equal(t, "is required", details["Age"])
	assert.Equal(t, "is required", details["Password"])
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var dst createPayload
	err := json.Unmarshal([]byte("{"), &dst)
	require.Error(t, err)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
