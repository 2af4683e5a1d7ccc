package auth

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// AuthControllerRoutes holds the paths the controller mounts.
type AuthControllerRoutes struct {
	Register  string
	Login     string
	UserAuth  string
	AdminTest string
}

// AuthController exposes the registration and login flows over HTTP and
// mounts the gated routes.
type AuthController struct {
	Logger Logger
	Store  UserStore
	Auther *Auther
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerStore(store UserStore) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

func WithControllerAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register:  "/register",
			Login:     "/login",
			UserAuth:  "/user-auth",
			AdminTest: "/test",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing UserStore in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the register/login flows plus the two gated
// routes: /user-auth behind the sign-in gate, /test behind sign-in + admin.
func (a *AuthController) RegisterAuthRoutes(app fiber.Router) {
	gate := GateConfig{
		Tokens: a.Auther.TokenService(),
		Store:  a.Store,
		Logger: a.Logger,
	}

	app.Post(a.Routes.Register, a.RegisterPost)
	app.Post(a.Routes.Login, a.LoginPost)

	app.Get(a.Routes.UserAuth, RequireSignIn(gate), a.UserAuthGet)
	app.Get(a.Routes.AdminTest, RequireSignIn(gate), RequireAdmin(gate), a.AdminTestGet)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return respond(c, http.StatusBadRequest, "failed to parse request body")
	}

	handler := NewRegisterUserHandler(a.Store).WithLogger(a.Logger)

	user, err := handler.Execute(c.UserContext(), *payload)
	if err != nil {
		return WriteError(c, a.Logger, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)

	return FirstValidationError(err, "email", "password")
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return respond(c, http.StatusBadRequest, "failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, a.Logger, err)
	}

	user, token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return WriteError(c, a.Logger, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    user.Public(),
		"token":   token,
	})
}

func (a *AuthController) UserAuthGet(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}

func (a *AuthController) AdminTestGet(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Protected route accessed successfully",
	})
}
