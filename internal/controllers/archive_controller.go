package controllers

import (
	"net/http"

	"deltica/internal/dto"
	"deltica/internal/services"
	apperrors "deltica/pkg/errors"
	"deltica/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ArchiveController struct {
	archiveService *services.ArchiveService
	logger         *zap.Logger
}

func NewArchiveController(
	service *services.ArchiveService,
	logger *zap.Logger,
) *ArchiveController {
	return &ArchiveController{
		archiveService: service,
		logger:         logger,
	}
}

func (c *ArchiveController) GetAll(ctx echo.Context) error {
	res, err := c.archiveService.GetAllArchived(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetAll: ошибка при получении архива", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Архив успешно получен", http.StatusOK)
}

func (c *ArchiveController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.archiveService.GetArchived(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetByID: ошибка при поиске архивной записи", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Архивная запись успешно найдена", http.StatusOK)
}

func (c *ArchiveController) GetFullByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.archiveService.GetArchivedFull(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetFullByID: ошибка при получении архивной карточки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Архивная карточка успешно получена", http.StatusOK)
}

func (c *ArchiveController) Archive(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ArchiveRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Archive: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	res, err := c.archiveService.Archive(ctx.Request().Context(), id, payload.ArchiveReason)
	if err != nil {
		c.logger.Error("Archive: ошибка при архивации оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно перенесено в архив", http.StatusOK)
}

func (c *ArchiveController) Restore(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	newID, err := c.archiveService.Restore(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Restore: ошибка при восстановлении из архива", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"equipment_id": newID},
		"Оборудование успешно восстановлено из архива", http.StatusOK)
}

func (c *ArchiveController) UpdateReason(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateArchiveReasonDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateReason: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Error("UpdateReason: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.archiveService.UpdateReason(ctx.Request().Context(), id, payload.ArchiveReason)
	if err != nil {
		c.logger.Error("UpdateReason: ошибка при обновлении причины архивации", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Причина архивации успешно обновлена", http.StatusOK)
}

func (c *ArchiveController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.archiveService.DeletePermanently(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Delete: ошибка при окончательном удалении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Архивная запись успешно удалена", http.StatusOK)
}
