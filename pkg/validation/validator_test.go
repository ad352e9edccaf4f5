package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Name     string `json:"name" validate:"nonblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func newValidator(minLen int) *validator.Validate {
	v := validator.New()
	Configure(v, minLen)
	return v
}

func TestConfigure_AcceptsValidInput(t *testing.T) {
	v := newValidator(6)
	err := v.Struct(registerInput{Name: "Ada", Email: "ada@x.com", Password: "secret1"})
	require.NoError(t, err)
	err = v.Struct(registerInput{Name: "Ada", Email: "ada@x.com", Password: "secret1", Role: "instructor"})
	require.NoError(t, err)
}

func TestToDetails_FieldMessages(t *testing.T) {
	v := newValidator(6)
	err := v.Struct(registerInput{Name: "  ", Email: "nope", Password: "123", Role: "admin"})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be at least 6 characters long", d["password"])
	assert.Equal(t, "must be one of [student, instructor]", d["role"])
}

func TestToDetails_JSONErrors(t *testing.T) {
	var out registerInput
	err := json.Unmarshal([]byte(`{"name":`), &out)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.NewDecoder(strings.NewReader(`{"name":`)).Decode(&out)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.NewDecoder(strings.NewReader(`{"name": 5}`)).Decode(&out)
	assert.Equal(t, "must be a string", ToDetails(err)["name"])

	assert.Nil(t, ToDetails(nil))
}

func TestFirstMessage(t *testing.T) {
	v := newValidator(8)
	err := v.Struct(registerInput{Name: "Ada", Email: "ada@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, `"password" must be at least 8 characters long`, FirstMessage(err))
}
