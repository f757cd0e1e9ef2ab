package modal_test

import (
	"net/url"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree-app/stocktree/internal/modal"
	_ "github.com/stocktree-app/stocktree/testing"
)

func testForm() *modal.Form {
	return modal.NewForm(
		modal.Field{Name: "name", Label: "Name", Widget: "text", Required: true},
		modal.Field{Name: "description", Label: "Description", Widget: "textarea"},
		modal.Field{Name: "active", Label: "Active", Widget: "checkbox"},
	)
}

func TestFormBind(t *testing.T) {
	form := testForm()
	form.Bind(url.Values{
		"name":        {"Resistor"},
		"description": {"10k ohm"},
		"active":      {"on"},
	})

	assert.Equal(t, "Resistor", form.Value("name"))
	assert.Equal(t, "10k ohm", form.Value("description"))
	assert.Equal(t, "true", form.Value("active"))
}

func TestFormBindUncheckedCheckbox(t *testing.T) {
	form := testForm()
	form.Bind(url.Values{"name": {"Resistor"}})

	// Browsers omit unchecked boxes from the submitted set entirely.
	assert.Equal(t, "false", form.Value("active"))
}

func TestFormValidRequiresBinding(t *testing.T) {
	form := testForm()
	assert.False(t, form.Valid(), "unbound form must not report valid")

	form.Bind(url.Values{"name": {"Resistor"}})
	assert.True(t, form.Valid())
}

func TestFormSetError(t *testing.T) {
	form := testForm()
	form.Bind(url.Values{"name": {"Resistor"}})

	form.SetError("name", "This field is required")
	assert.False(t, form.Valid())

	form2 := testForm()
	form2.Bind(url.Values{"name": {"Resistor"}})
	form2.SetError("", "already exists")
	assert.False(t, form2.Valid())
	assert.Equal(t, "already exists", form2.NonFieldError)
}

func TestFormSetErrorUnknownFieldFallsBack(t *testing.T) {
	form := testForm()
	form.Bind(url.Values{"name": {"Resistor"}})

	form.SetError("no_such_field", "bad value")
	assert.Equal(t, "bad value", form.NonFieldError)
}

func TestFormApplyValidation(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	v := validator.New()
	err := v.Struct(payload{})
	require.Error(t, err)

	form := testForm()
	form.Bind(url.Values{})
	form.ApplyValidation(err)

	assert.False(t, form.Valid())
	for _, f := range form.Fields {
		if f.Name == "name" {
			assert.Equal(t, "This field is required", f.Error)
		}
	}
}

func TestFormApplyValidationUsesFormTagNames(t *testing.T) {
	type payload struct {
		MinimumStock string `form:"minimum_stock" validate:"numeric"`
	}
	v := modal.NewValidator()
	err := v.Struct(payload{MinimumStock: "ten"})
	require.Error(t, err)

	form := modal.NewForm(
		modal.Field{Name: "minimum_stock", Label: "Minimum Stock", Widget: "number"},
	)
	form.Bind(url.Values{"minimum_stock": {"ten"}})
	form.ApplyValidation(err)

	assert.False(t, form.Valid())
	assert.Empty(t, form.NonFieldError)
	assert.Equal(t, "Invalid value", form.Fields[0].Error)
}

func TestFormSetValues(t *testing.T) {
	form := testForm()
	form.SetValues(map[string]string{"name": "Capacitor", "active": "true"})

	assert.Equal(t, "Capacitor", form.Value("name"))
	assert.Equal(t, "true", form.Value("active"))
	assert.False(t, form.Valid(), "pre-populated form is still unbound")
}
