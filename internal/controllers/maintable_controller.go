package controllers

import (
	"net/http"
	"strconv"

	"deltica/internal/dto"
	"deltica/internal/services"
	apperrors "deltica/pkg/errors"
	"deltica/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MainTableController struct {
	mainTableService *services.MainTableService
	logger           *zap.Logger
}

func NewMainTableController(
	service *services.MainTableService,
	logger *zap.Logger,
) *MainTableController {
	return &MainTableController{
		mainTableService: service,
		logger:           logger,
	}
}

func (c *MainTableController) GetAll(ctx echo.Context) error {
	res, err := c.mainTableService.GetAll(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetAll: ошибка при получении реестра оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Реестр оборудования успешно получен", http.StatusOK)
}

func (c *MainTableController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.mainTableService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetByID: ошибка при поиске оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

func (c *MainTableController) GetFullByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.mainTableService.GetFullByID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetFullByID: ошибка при получении карточки оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Карточка оборудования успешно получена", http.StatusOK)
}

func (c *MainTableController) Create(ctx echo.Context) error {
	var payload dto.CreateMainTableDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Create: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Error("Create: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.mainTableService.Create(ctx.Request().Context(), &payload)
	if err != nil {
		c.logger.Error("Create: ошибка при регистрации оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно зарегистрировано", http.StatusCreated)
}

func (c *MainTableController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMainTableDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Update: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Error("Update: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.mainTableService.Update(ctx.Request().Context(), id, &payload)
	if err != nil {
		c.logger.Error("Update: ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *MainTableController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.mainTableService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Delete: ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Оборудование успешно удалено", http.StatusOK)
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]string{"param": ctx.Param("id")},
		)
	}
	return id, nil
}
