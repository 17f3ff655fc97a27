package request

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/estadio/stadium-api/internal/domain"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errUnknownScope    = errors.New("unknown scope")
)

// ScopeList accepts either a single scope or an array of scopes.
type ScopeList []string

func (s *ScopeList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = nil
		if single != "" {
			*s = ScopeList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("scope must be a string or an array of strings: %w", err)
	}
	*s = many

	return nil
}

func (s ScopeList) Scopes() domain.Scopes {
	return domain.ScopesFromStrings(s)
}

func validScopes(value interface{}) error {
	list, _ := value.(ScopeList)
	for _, scope := range list {
		if !domain.Scope(scope).Valid() {
			return fmt.Errorf("%w %q", errUnknownScope, scope)
		}
	}
	return nil
}

func validPassword(value interface{}) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}

	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}
	return nil
}

type RoleRequest struct {
	Name  string    `json:"name"`
	Scope ScopeList `json:"scope"`
}

func (req RoleRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Scope, validation.Required, validation.By(validScopes)),
	)
}

type CreateUserRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      RoleRequest `json:"role"`
	Age       int         `json:"age"`
	Address   string      `json:"address"`
	Country   string      `json:"country"`
	TaxNumber int64       `json:"taxNumber"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 64)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.By(validPassword)),
		validation.Field(&req.Role),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&req.Address, validation.Required),
		validation.Field(&req.Country, validation.Required),
		validation.Field(&req.TaxNumber, validation.Required, validation.Min(int64(1))),
	)
}

func (req *CreateUserRequest) ToDomain() domain.User {
	return domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role: domain.Role{
			Name:   req.Role.Name,
			Scopes: req.Role.Scope.Scopes(),
		},
		Age:       req.Age,
		Address:   req.Address,
		Country:   req.Country,
		TaxNumber: req.TaxNumber,
	}
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type UpdateUserRequest struct {
	Name    *string      `json:"name"`
	Email   *string      `json:"email"`
	Age     *int         `json:"age"`
	Address *string      `json:"address"`
	Country *string      `json:"country"`
	Role    *RoleRequest `json:"role"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 64)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&req.Address, validation.NilOrNotEmpty),
		validation.Field(&req.Country, validation.NilOrNotEmpty),
		validation.Field(&req.Role),
	)
}

func (req *UpdateUserRequest) ToDomain() domain.UserPatch {
	patch := domain.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		Age:     req.Age,
		Address: req.Address,
		Country: req.Country,
	}
	if req.Role != nil {
		if req.Role.Name != "" {
			patch.RoleName = &req.Role.Name
		}
		patch.Scopes = req.Role.Scope.Scopes()
	}

	return patch
}

type MemberRequest struct {
	TaxNumber      int64   `json:"taxNumber"`
	Photo          string  `json:"photo"`
	PaymentRegular bool    `json:"paymentRegular"`
	Cash           float64 `json:"cash"`
}

func (req *MemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TaxNumber, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Cash, validation.Min(0.0)),
	)
}

func (req *MemberRequest) ToDomain() domain.Member {
	member := domain.NewMemberFor(req.TaxNumber)
	if req.Photo != "" {
		member.Photo = req.Photo
	}
	member.PaymentRegular = req.PaymentRegular
	member.Cash = req.Cash

	return member
}

type UpdateMemberRequest struct {
	Photo          *string  `json:"photo"`
	PaymentRegular *bool    `json:"paymentRegular"`
	Cash           *float64 `json:"cash"`
}

func (req *UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Photo, validation.NilOrNotEmpty),
		validation.Field(&req.Cash, validation.Min(0.0)),
	)
}

func (req *UpdateMemberRequest) ToDomain() domain.MemberPatch {
	return domain.MemberPatch{
		Photo:          req.Photo,
		PaymentRegular: req.PaymentRegular,
		Cash:           req.Cash,
	}
}
