package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/riaz-codebi/CPCG-Tech-Studio/internal/api/http"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/api/http/middleware"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/auth"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/bi"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/docchat"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/identity"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/provider"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/session"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/voicechat"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/web"

	"github.com/riaz-codebi/CPCG-Tech-Studio/config"
)

type RouterDeps struct {
	Config   *config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Users    *identity.Repo
	Sessions *session.Store
	Provider *provider.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.Config.App.Name, dep.Config.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.Use(session.WithUser(dep.Sessions))

	authHandler := auth.NewHandler(dep.Config.Google, dep.Config.Session.Secret, dep.Users, dep.Sessions, dep.Config.Session.TTL)
	authHandler.RegisterRoutes(r)

	webHandler := web.NewHandler(dep.Config.App.Name)
	webHandler.RegisterRoutes(r)

	bi.NewHandler().RegisterRoutes(r)

	docchat.NewHandler(docchat.NewService(dep.Provider)).RegisterRoutes(r)
	voicechat.NewHandler(voicechat.NewService(dep.Provider)).RegisterRoutes(r)

	return r
}
