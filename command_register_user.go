package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse phone numbers that are not
// in international format.
var DefaultPhoneRegion = "US"

// RegisterUserMessage carries the registration payload. Field order matters
// for validation: the first missing field, in this order, names the error.
type RegisterUserMessage struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Phone    string `form:"phone" json:"phone"`
	State    string `form:"state" json:"state"`
	City     string `form:"city" json:"city"`
	Street   string `form:"street" json:"street"`
	Pincode  string `form:"pincode" json:"pincode"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

var registrationFieldOrder = []string{
	"name", "email", "password", "phone", "state", "city", "street", "pincode",
}

// Validate will run validation rules
func (r RegisterUserMessage) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.State, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.Street, validation.Required),
		validation.Field(&r.Pincode, validation.Required),
	)

	return FirstValidationError(err, registrationFieldOrder...)
}

// RegisterUserHandler runs the registration flow: validate, check
// uniqueness, hash the password, persist. The store's unique constraint
// stays the final authority: a duplicate that races past the pre-check is
// still reported as ErrEmailTaken.
type RegisterUserHandler struct {
	store  UserStore
	logger Logger
}

func NewRegisterUserHandler(store UserStore) *RegisterUserHandler {
	return &RegisterUserHandler{
		store:  store,
		logger: defLogger{},
	}
}

func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	h.logger = logger
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.store.FindByEmail(ctx, event.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !goerrors.Is(err, ErrIdentityNotFound) && !goerrors.IsNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Name:         event.Name,
		Email:        event.Email,
		Phone:        normalizePhone(event.Phone),
		PasswordHash: hash,
		Address: Address{
			State:   event.State,
			City:    event.City,
			Street:  event.Street,
			Pincode: event.Pincode,
		},
	}

	created, err := h.store.Insert(ctx, user)
	if err != nil {
		if goerrors.Is(err, ErrEmailTaken) || isDuplicateKeyError(err) {
			// lost the check-then-insert race, same outcome as the pre-check
			return nil, ErrEmailTaken
		}

		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist user")
	}

	return created, nil
}

// normalizePhone formats the phone number as E.164 when it parses as a
// valid number; otherwise the raw input is kept as provided.
func normalizePhone(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
