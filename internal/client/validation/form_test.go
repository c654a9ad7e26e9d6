package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginForm() *Form {
	return NewForm(
		map[string]any{"email": "", "password": "", "remember": false},
		map[string][]Rule{
			"email":    {Required(), Email()},
			"password": {Required(), MinLength(6)},
		},
	)
}

func TestValidate_AllPass(t *testing.T) {
	f := loginForm()
	f.SetFieldValue("email", "admin@example.com")
	f.SetFieldValue("password", "hunter22")

	assert.True(t, f.Validate())
	assert.Empty(t, f.Errors())
	assert.False(t, f.HasErrors())
	assert.True(t, f.IsValid())
}

func TestValidate_OneFailingField(t *testing.T) {
	f := loginForm()
	f.SetFieldValue("email", "admin@example.com")
	f.SetFieldValue("password", "abc")

	assert.False(t, f.Validate())
	assert.Equal(t, map[string]string{"password": "Minimum length is 6 characters"}, f.Errors())
}

func TestValidate_EvaluatesEveryField(t *testing.T) {
	f := loginForm()

	assert.False(t, f.Validate())
	assert.Equal(t, map[string]string{
		"email":    "This field is required",
		"password": "This field is required",
	}, f.Errors())
}

func TestValidateField_FirstFailureWins(t *testing.T) {
	checked := false
	f := NewForm(map[string]any{"code": ""}, map[string][]Rule{
		"code": {
			Required(),
			Custom(func(any, map[string]any) bool { checked = true; return true }, ""),
		},
	})

	assert.False(t, f.ValidateField("code"))
	assert.Equal(t, "This field is required", f.FieldState("code").Error)
	assert.False(t, checked, "later rules are skipped")

	f.SetFieldValue("code", "X1")
	assert.True(t, f.ValidateField("code"))
	assert.True(t, checked)
	assert.True(t, f.FieldState("code").Valid)
}

func TestValidateField_NoRules(t *testing.T) {
	f := loginForm()
	f.SetFieldError("remember", "server says no")
	assert.True(t, f.ValidateField("remember"))
	assert.Equal(t, "server says no", f.FieldState("remember").Error)
}

func TestValidate_MatchesSeesOtherFields(t *testing.T) {
	f := NewForm(map[string]any{"password": "", "confirm": ""}, map[string][]Rule{
		"confirm": {Required(), Matches("password")},
	})
	f.SetFieldValue("password", "abcdef")
	f.SetFieldValue("confirm", "abcdeg")
	require.False(t, f.Validate())
	assert.Equal(t, "Fields do not match", f.Errors()["confirm"])

	f.SetFieldValue("confirm", "abcdef")
	assert.True(t, f.Validate())
}

func TestReset(t *testing.T) {
	f := loginForm()
	f.SetFieldValue("email", "x")
	f.SetFieldValue("extra", 1)
	f.Touch("email")
	f.Validate()
	require.True(t, f.IsDirty())
	require.True(t, f.HasErrors())

	f.Reset()

	assert.Equal(t, map[string]any{"email": "", "password": "", "remember": false}, f.Values())
	assert.Empty(t, f.Errors())
	assert.False(t, f.IsDirty())

	st := f.FieldState("email")
	assert.Equal(t, FieldState{Value: "", Valid: true}, st)
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"email", "password"}, loginForm().Fields())
}

func TestMarkDirtyAndTouch(t *testing.T) {
	f := loginForm()
	f.MarkDirty("remember")
	f.Touch("email")
	assert.True(t, f.IsDirty())
	assert.True(t, f.FieldState("remember").Dirty)
	assert.True(t, f.FieldState("email").Touched)
	assert.Equal(t, "", f.Value("email"))
}
