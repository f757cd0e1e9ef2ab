package part

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/stocktree-app/stocktree/internal/category"
	"github.com/stocktree-app/stocktree/internal/modal"
)

// formModel is the typed shape checked by the validator.
type formModel struct {
	Name         string `form:"name" validate:"required,max=100"`
	IPN          string `form:"ipn" validate:"max=100"`
	Description  string `form:"description" validate:"max=250"`
	Category     string `form:"category" validate:"omitempty,number"`
	Link         string `form:"link" validate:"omitempty,url"`
	MinimumStock string `form:"minimum_stock" validate:"omitempty,numeric"`
}

type formBuilder struct {
	service    *Service
	categories *category.Service
	validate   *validator.Validate
}

func (b formBuilder) fields(ctx context.Context) ([]modal.Field, error) {
	categories, err := b.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	options := []modal.Option{{Value: "", Label: "---------"}}
	for _, c := range categories {
		options = append(options, modal.Option{Value: strconv.FormatInt(c.ID, 10), Label: c.Name})
	}
	return []modal.Field{
		{Name: "name", Label: "Name", Widget: "text", Required: true},
		{Name: "ipn", Label: "IPN", Widget: "text", Help: "Internal part number"},
		{Name: "description", Label: "Description", Widget: "textarea"},
		{Name: "category", Label: "Category", Widget: "select", Options: options},
		{Name: "link", Label: "External Link", Widget: "text", Help: "Datasheet or supplier page"},
		{Name: "minimum_stock", Label: "Minimum Stock", Widget: "number"},
		{Name: "purchaseable", Label: "Purchaseable", Widget: "checkbox"},
		{Name: "buildable", Label: "Buildable", Widget: "checkbox"},
		{Name: "active", Label: "Active", Widget: "checkbox"},
		{Name: "notes", Label: "Notes", Widget: "textarea"},
	}, nil
}

func (b formBuilder) bind(ctx context.Context, r *http.Request) (*modal.Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields, err := b.fields(ctx)
	if err != nil {
		return nil, err
	}
	form := modal.NewForm(fields...)
	form.Bind(r.PostForm)
	form.ApplyValidation(b.validate.Struct(formModel{
		Name:         form.Value("name"),
		IPN:          form.Value("ipn"),
		Description:  form.Value("description"),
		Category:     form.Value("category"),
		Link:         form.Value("link"),
		MinimumStock: form.Value("minimum_stock"),
	}))
	if min := form.Value("minimum_stock"); min != "" {
		if qty, err := strconv.ParseFloat(min, 64); err == nil && qty < 0 {
			form.SetError("minimum_stock", "Value must not be negative")
		}
	}
	return form, nil
}

func partFromForm(form *modal.Form) Part {
	p := Part{
		Name:         form.Value("name"),
		IPN:          form.Value("ipn"),
		Description:  form.Value("description"),
		Link:         form.Value("link"),
		Notes:        form.Value("notes"),
		Purchaseable: form.Value("purchaseable") == "true",
		Buildable:    form.Value("buildable") == "true",
		Active:       form.Value("active") == "true",
	}
	if cat := form.Value("category"); cat != "" {
		if id, err := strconv.ParseInt(cat, 10, 64); err == nil {
			p.CategoryID = &id
		}
	}
	if min := form.Value("minimum_stock"); min != "" {
		if qty, err := strconv.ParseFloat(min, 64); err == nil {
			p.MinimumStock = qty
		}
	}
	return p
}

func formValues(p Part) map[string]string {
	values := map[string]string{
		"name":          p.Name,
		"ipn":           p.IPN,
		"description":   p.Description,
		"link":          p.Link,
		"notes":         p.Notes,
		"minimum_stock": strconv.FormatFloat(p.MinimumStock, 'f', -1, 64),
		"purchaseable":  strconv.FormatBool(p.Purchaseable),
		"buildable":     strconv.FormatBool(p.Buildable),
		"active":        strconv.FormatBool(p.Active),
	}
	if p.CategoryID != nil {
		values["category"] = strconv.FormatInt(*p.CategoryID, 10)
	}
	return values
}

// createStrategy implements modal.CreateStrategy.
type createStrategy struct {
	formBuilder
}

func (s createStrategy) NewForm(ctx context.Context) (*modal.Form, error) {
	fields, err := s.fields(ctx)
	if err != nil {
		return nil, err
	}
	form := modal.NewForm(fields...)
	// New parts default to active.
	form.SetValues(map[string]string{"active": "true"})
	return form, nil
}

func (s createStrategy) Bind(ctx context.Context, r *http.Request) (*modal.Form, error) {
	return s.bind(ctx, r)
}

func (s createStrategy) Save(ctx context.Context, form *modal.Form) (modal.Saved, error) {
	created, err := s.service.Create(ctx, partFromForm(form))
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
	p, err := s.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := s.fields(ctx)
	if err != nil {
		return nil, err
	}
	form := modal.NewForm(fields...)
	form.SetValues(formValues(p))
	return form, nil
}

func (s updateStrategy) Bind(ctx context.Context, id int64, r *http.Request) (*modal.Form, error) {
	if _, err := s.service.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.bind(ctx, r)
}

func (s updateStrategy) Save(ctx context.Context, id int64, form *modal.Form) (modal.Saved, error) {
	if err := s.service.Update(ctx, id, partFromForm(form)); err != nil {
		return modal.Saved{}, err
	}
	return modal.Saved{PK: id, URL: CanonicalURL(id)}, nil
}

// deleteStrategy implements modal.DeleteStrategy.
type deleteStrategy struct {
	service *Service
}

func (s deleteStrategy) Object(ctx context.Context, id int64) (map[string]any, error) {
	p, err := s.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{"part": p}, nil
}

func (s deleteStrategy) Delete(ctx context.Context, id int64) error {
	return s.service.Delete(ctx, id)
}
