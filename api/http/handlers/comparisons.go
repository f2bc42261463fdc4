package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/api/http/presenter"
	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/security/jwt"
)

// ComparisonsHandler отдаёт историю сравнений текущего пользователя.
type ComparisonsHandler struct {
	svc comparison.UseCase
}

func NewComparisonsHandler(svc comparison.UseCase) *ComparisonsHandler {
	return &ComparisonsHandler{svc: svc}
}

type comparisonList struct {
	Items  []comparison.Record `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// List возвращает сохранённые сравнения пользователя, новые первыми.
// @Summary  Список сравнений
// @Tags     Сравнение
// @Produce  json
// @Security BearerAuth
// @Param    limit  query int false "Размер страницы (по умолчанию 20, максимум 200)"
// @Param    offset query int false "Смещение"
// @Success  200 {object} comparisonList
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  503 {object} presenter.ErrorResponse
// @Router   /api/v1/comparisons [get]
func (h *ComparisonsHandler) List(c *fiber.Ctx) error {
	owner := jwt.UserID(c)
	if owner == uuid.Nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 20)
	items, err := h.svc.List(c.UserContext(), owner, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	if items == nil {
		items = []comparison.Record{}
	}
	return presenter.JSON(c, http.StatusOK, comparisonList{Items: items, Limit: limit, Offset: offset})
}

// Get возвращает одно сравнение по id.
// @Summary  Получить сравнение
// @Tags     Сравнение
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID сравнения"
// @Success  200 {object} comparison.Record
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /api/v1/comparisons/{id} [get]
func (h *ComparisonsHandler) Get(c *fiber.Ctx) error {
	owner, id, ok := h.ids(c)
	if !ok {
		return nil
	}
	rec, err := h.svc.Get(c.UserContext(), owner, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// Delete удаляет сравнение пользователя.
// @Summary  Удалить сравнение
// @Tags     Сравнение
// @Security BearerAuth
// @Param    id path string true "ID сравнения"
// @Success  204
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /api/v1/comparisons/{id} [delete]
func (h *ComparisonsHandler) Delete(c *fiber.Ctx) error {
	owner, id, ok := h.ids(c)
	if !ok {
		return nil
	}
	if err := h.svc.Delete(c.UserContext(), owner, id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ids writes the error response itself when ok is false.
func (h *ComparisonsHandler) ids(c *fiber.Ctx) (owner, id uuid.UUID, ok bool) {
	owner = jwt.UserID(c)
	if owner == uuid.Nil {
		_ = presenter.Error(c, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

func (h *ComparisonsHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, comparison.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "comparison not found")
	case errors.Is(err, comparison.ErrHistoryDisabled):
		return presenter.Error(c, http.StatusServiceUnavailable, "comparison history is disabled")
	default:
		middleware.Logger(c).Error("comparison history", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
