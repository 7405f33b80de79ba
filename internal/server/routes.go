package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	users repository.UserRepository,
	authH *handler.AuthHandler,
	addrH *handler.AddressHandler,
	storeH *handler.StoreHandler,
) {
	//認証なしで使えるルート
	authH.RegisterPublicRoutes(e)
	storeH.RegisterPublicRoutes(e)

	//JWT必須のルート
	authed := e.Group("", middleware.AuthJWT(cfg), middleware.TokenVersionGuard(users))
	authH.RegisterAuthedRoutes(authed)
	addrH.RegisterRoutes(authed)

	//店舗の変更系はCUSTOMER禁止
	storeMut := authed.Group("", middleware.StoreRoleGuard())
	storeH.RegisterMutationRoutes(storeMut)

	//管理者のみ
	admin := authed.Group("/admin", middleware.AdminRoleGuard())
	authH.RegisterAdminRoutes(admin)
}
