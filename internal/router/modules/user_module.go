package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/minbase/account-service/internal/interface/http"
	"github.com/minbase/account-service/internal/interface/middleware"
	"github.com/minbase/account-service/pkg/helpers"
)

// UserModule wires account HTTP handlers and bearer auth into routes.
// Public: POST /api/users/signup, POST /api/users/signin
// Protected: GET /api/users/profile, PUT /api/users, DELETE /api/users,
// POST /api/users/profile-image, GET /api/users/search

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	users.POST("/signup", m.Handler.Signup)
	users.POST("/signin", m.Handler.Signin)

	auth := middleware.Auth(m.JWT)
	users.GET("/profile", auth, m.Handler.GetProfile)
	users.PUT("", auth, m.Handler.Update)
	users.DELETE("", auth, m.Handler.Delete)
	users.POST("/profile-image", auth, m.Handler.UploadProfileImage)
	users.GET("/search", auth, m.Handler.Search)
}
