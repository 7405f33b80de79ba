package handler

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration // refresh/csrf cookie の有効期限
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		refreshTTL:   refreshTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func (h *AuthHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	e.POST("/auth/logout", h.Logout)
}

func (h *AuthHandler) RegisterAuthedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
}

func (h *AuthHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/users/:id/force-logout", h.ForceLogout)
}

// RegisterはPOST /auth/registerのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return authWriteError(c, http.StatusBadRequest, "validation error")
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// LoginはPOST /auth/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return authWriteError(c, http.StatusBadRequest, "validation error")
	}

	//User-Agentを取得（refreshtokenに紐付ける）
	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Login(c.Request().Context(), req, userAgent)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	//refresh cookie + csrf cookie
	h.setRefreshCookie(c, out.RefreshTokenPlain)
	h.setCsrfCookie(c, out.CsrfTokenPlain)

	return c.JSON(http.StatusOK, out.Body)
}

// RefreshはPOST /auth/refresh のハンドラ。cookieのrefreshをローテーションする
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return authWriteError(c, http.StatusUnauthorized, "unauthorized")
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain)
	h.setCsrfCookie(c, out.CsrfTokenPlain)

	return c.JSON(http.StatusOK, out.Body)
}

// LogoutはPOST /auth/logout のハンドラ。refreshを失効させてcookieを消す
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return authWriteError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	h.clearCookie(c, "refresh", true)
	h.clearCookie(c, "csrf_token", false)

	return c.JSON(http.StatusOK, out)
}

// MeはGET /auth/me のハンドラ
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := authGetUserID(c)
	if !ok {
		return authWriteError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// ForceLogoutはPOST /admin/users/:id/force-logout のハンドラ（ADMINのみ）
func (h *AuthHandler) ForceLogout(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return authWriteError(c, http.StatusBadRequest, "validation error")
	}

	out, err := h.uc.ForceLogout(c.Request().Context(), targetID)
	if err != nil {
		return authWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// refreshtoken をCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

// csrftokenをCookieにセット
func (h *AuthHandler) setCsrfCookie(c echo.Context, csrfToken string) {
	c.SetCookie(&http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearCookie(c echo.Context, name string, httpOnly bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

// ------- AuthHandler専用 helper -------

func authGetUserID(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	id, ok := v.(int64)
	return id, ok && id > 0
}

func authWriteError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func authWriteUsecaseError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrValidation:
		return authWriteError(c, http.StatusBadRequest, "validation error")
	case usecase.ErrUnauthorized, usecase.ErrSecurityIncident:
		return authWriteError(c, http.StatusUnauthorized, "unauthorized")
	case usecase.ErrForbidden:
		return authWriteError(c, http.StatusForbidden, "forbidden")
	case usecase.ErrUserNotFound:
		return authWriteError(c, http.StatusNotFound, "not found")
	case usecase.ErrConflict:
		return authWriteError(c, http.StatusConflict, "conflict")
	default:
		return authWriteError(c, http.StatusInternalServerError, "internal error")
	}
}
