package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はechoインスタンスを組み立てて返す。
func New(
	cfg config.Config,
	users repository.UserRepository,
	authH *handler.AuthHandler,
	addrH *handler.AddressHandler,
	storeH *handler.StoreHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, users, authH, addrH, storeH)
	return e
}

// Start はサーバーを起動する。
func Start(
	addr string,
	cfg config.Config,
	users repository.UserRepository,
	authH *handler.AuthHandler,
	addrH *handler.AddressHandler,
	storeH *handler.StoreHandler,
) error {
	e := New(cfg, users, authH, addrH, storeH)
	return e.Start(addr)
}
