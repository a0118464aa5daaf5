package types

import (
	"net/mail"
	"net/url"
	"strings"
)

const minPasswordLength = 5

// CreateUserRequest represents the request body for account creation.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *CreateUserRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(r.Email) == "" {
		errs.Add("email", "this field is required")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs.Add("email", "enter a valid email address")
	}
	if r.Password == "" {
		errs.Add("password", "this field is required")
	} else if len(r.Password) < minPasswordLength {
		errs.Add("password", "password is too short")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IssueTokenRequest represents the request body for token issuance.
type IssueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *IssueTokenRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Email == "" {
		errs.Add("email", "this field is required")
	}
	if r.Password == "" {
		errs.Add("password", "this field is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateUserRequest represents the request body for self-service profile
// updates. Nil fields are left untouched; fields outside this set are
// dropped by JSON decoding rather than rejected.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (r *UpdateUserRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Password != nil && len(*r.Password) < minPasswordLength {
		errs.Add("password", "password is too short")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateAttrRequest covers tag and ingredient creation, which share a shape.
type CreateAttrRequest struct {
	Name string `json:"name"`
}

func (r *CreateAttrRequest) Validate() FieldErrors {
	if strings.TrimSpace(r.Name) == "" {
		return FieldErrors{"name": {"this field may not be blank"}}
	}
	return nil
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Tags and ingredients are referenced by id.
type CreateRecipeRequest struct {
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

func (r *CreateRecipeRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(r.Title) == "" {
		errs.Add("title", "this field may not be blank")
	}
	if r.TimeMinutes < 0 {
		errs.Add("time_minutes", "ensure this value is greater than or equal to 0")
	}
	if r.Price < 0 {
		errs.Add("price", "ensure this value is greater than or equal to 0")
	}
	if r.Link != "" {
		if u, err := url.Parse(r.Link); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("link", "enter a valid URL")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRecipeRequest represents a full or partial recipe update. Nil fields
// are not modified, which makes PATCH and PUT share one code path.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

func (r *UpdateRecipeRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs.Add("title", "this field may not be blank")
	}
	if r.TimeMinutes != nil && *r.TimeMinutes < 0 {
		errs.Add("time_minutes", "ensure this value is greater than or equal to 0")
	}
	if r.Price != nil && *r.Price < 0 {
		errs.Add("price", "ensure this value is greater than or equal to 0")
	}
	if r.Link != nil && *r.Link != "" {
		if u, err := url.Parse(*r.Link); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("link", "enter a valid URL")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
