package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	uc *usecase.StoreUsecase
}

func NewStoreHandler(uc *usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// 読み取りは誰でも
func (h *StoreHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/stores/:id", h.Get)
}

// 変更系はStoreRoleGuardの下に置く
func (h *StoreHandler) RegisterMutationRoutes(g *echo.Group) {
	g.PUT("/stores/:id", h.Update)
	g.DELETE("/stores/:id", h.Delete)
}

func (h *StoreHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return storeWriteError(c, http.StatusBadRequest, "validation error")
	}

	store, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Update(c echo.Context) error {
	userID, ok := storeGetUserID(c)
	if !ok {
		return storeWriteError(c, http.StatusUnauthorized, "unauthorized")
	}

	id := c.Param("id")
	if id == "" {
		return storeWriteError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.StoreUpdateRequest
	if err := c.Bind(&req); err != nil {
		return storeWriteError(c, http.StatusBadRequest, "validation error")
	}

	store, err := h.uc.Update(c.Request().Context(), userID, id, req)
	if err != nil {
		return storeWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Delete(c echo.Context) error {
	userID, ok := storeGetUserID(c)
	if !ok {
		return storeWriteError(c, http.StatusUnauthorized, "unauthorized")
	}

	id := c.Param("id")
	if id == "" {
		return storeWriteError(c, http.StatusBadRequest, "validation error")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return storeWriteUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

// ------- StoreHandler専用 helper -------

func storeGetUserID(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	id, ok := v.(int64)
	return id, ok && id > 0
}

func storeWriteError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func storeWriteUsecaseError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrValidation:
		return storeWriteError(c, http.StatusBadRequest, "validation error")
	case usecase.ErrUnauthorized:
		return storeWriteError(c, http.StatusUnauthorized, "unauthorized")
	case usecase.ErrForbidden:
		return storeWriteError(c, http.StatusForbidden, "forbidden")
	case usecase.ErrUserNotFound, usecase.ErrStoreNotFound,
		usecase.ErrLocationNotFound, usecase.ErrCategoryNotFound:
		return storeWriteError(c, http.StatusNotFound, "not found")
	default:
		return storeWriteError(c, http.StatusInternalServerError, "internal error")
	}
}
