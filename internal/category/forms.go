package category

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/stocktree-app/stocktree/internal/modal"
)

// formModel is the typed shape checked by the validator.
type formModel struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=250"`
	Parent      string `form:"parent" validate:"omitempty,number"`
}

type formBuilder struct {
	service  *Service
	validate *validator.Validate
}

// fields builds the category form field set. excludeID removes a category
// from the parent choices so a record cannot be parented to itself.
func (b formBuilder) fields(ctx context.Context, excludeID int64) ([]modal.Field, error) {
	categories, err := b.service.List(ctx)
	if err != nil {
		return nil, err
	}
	options := []modal.Option{{Value: "", Label: "---------"}}
	for _, c := range categories {
		if excludeID != 0 && c.ID == excludeID {
			continue
		}
		options = append(options, modal.Option{Value: strconv.FormatInt(c.ID, 10), Label: c.Name})
	}
	return []modal.Field{
		{Name: "name", Label: "Name", Widget: "text", Required: true},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "parent", Label: "Parent Category", Widget: "select", Options: options},
	}, nil
}

func (b formBuilder) bind(ctx context.Context, r *http.Request, excludeID int64) (*modal.Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields, err := b.fields(ctx, excludeID)
	if err != nil {
		return nil, err
	}
	form := modal.NewForm(fields...)
	form.Bind(r.PostForm)
	form.ApplyValidation(b.validate.Struct(formModel{
		Name:        form.Value("name"),
		Description: form.Value("description"),
		Parent:      form.Value("parent"),
	}))
	return form, nil
}

func categoryFromForm(form *modal.Form) Category {
	c := Category{
		Name:        form.Value("name"),
		Description: form.Value("description"),
	}
	if parent := form.Value("parent"); parent != "" {
		if id, err := strconv.ParseInt(parent, 10, 64); err == nil {
			c.ParentID = &id
		}
	}
	return c
}

func formValues(c Category) map[string]string {
	values := map[string]string{
		"name":        c.Name,
		"description": c.Description,
	}
	if c.ParentID != nil {
		values["parent"] = strconv.FormatInt(*c.ParentID, 10)
	}
	return values
}

// createStrategy implements modal.CreateStrategy.
type createStrategy struct {
	formBuilder
}

func (s createStrategy) NewForm(ctx context.Context) (*modal.Form, error) {
	fields, err := s.fields(ctx, 0)
	if err != nil {
		return nil, err
	}
	return modal.NewForm(fields...), nil
}

func (s createStrategy) Bind(ctx context.Context, r *http.Request) (*modal.Form, error) {
	return s.bind(ctx, r, 0)
}

func (s createStrategy) Save(ctx context.Context, form *modal.Form) (modal.Saved, error) {
	created, err := s.service.Create(ctx, categoryFromForm(form))
	if err != nil {
		return modal.Saved{}, err
	}
	return modal.Saved{PK: created.ID, URL: CanonicalURL(created.ID)}, nil
}

// updateStrategy implements modal.UpdateStrategy.
type updateStrategy struct {
	formBuilder
}

func (s updateStrategy) FormForObject(ctx context.Context, id int64) (*modal.Form, error) {
	c, err := s.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := s.fields(ctx, id)
	if err != nil {
		return nil, err
	}
	form := modal.NewForm(fields...)
	form.SetValues(formValues(c))
	return form, nil
}

func (s updateStrategy) Bind(ctx context.Context, id int64, r *http.Request) (*modal.Form, error) {
	if _, err := s.service.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.bind(ctx, r, id)
}

func (s updateStrategy) Save(ctx context.Context, id int64, form *modal.Form) (modal.Saved, error) {
	if err := s.service.Update(ctx, id, categoryFromForm(form)); err != nil {
		return modal.Saved{}, err
	}
	return modal.Saved{PK: id, URL: CanonicalURL(id)}, nil
}

// deleteStrategy implements modal.DeleteStrategy.
type deleteStrategy struct {
	service *Service
}

func (s deleteStrategy) Object(ctx context.Context, id int64) (map[string]any, error) {
	c, err := s.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{"category": c}, nil
}

func (s deleteStrategy) Delete(ctx context.Context, id int64) error {
	return s.service.Delete(ctx, id)
}
