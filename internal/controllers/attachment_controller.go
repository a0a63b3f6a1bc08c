package controllers

import (
	"net/http"

	"deltica/internal/services"
	"deltica/pkg/constants"
	apperrors "deltica/pkg/errors"
	"deltica/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AttachmentController struct {
	attachmentService *services.AttachmentService
	maxFileSize       int64
	logger            *zap.Logger
}

func NewAttachmentController(
	service *services.AttachmentService,
	maxFileSize int64,
	logger *zap.Logger,
) *AttachmentController {
	return &AttachmentController{
		attachmentService: service,
		maxFileSize:       maxFileSize,
		logger:            logger,
	}
}

var allowedFileTypes = map[string]bool{
	constants.FileTypeCertificate:  true,
	constants.FileTypePassport:     true,
	constants.FileTypeTechnicalDoc: true,
	constants.FileTypeOther:        true,
}

func (c *AttachmentController) Upload(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", err, nil),
			c.logger,
		)
	}

	if fileHeader.Size > c.maxFileSize {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл превышает допустимый размер", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	fileType := ctx.FormValue("file_type")
	if fileType == "" {
		fileType = constants.FileTypeOther
	}
	if !allowedFileTypes[fileType] {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неизвестная категория файла", apperrors.ErrBadRequest,
				map[string]string{"file_type": fileType}),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.logger.Error("Upload: не удалось открыть загружаемый файл", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	res, err := c.attachmentService.Upload(ctx.Request().Context(), equipmentID, src, fileHeader.Filename, fileType, fileHeader.Size)
	if err != nil {
		c.logger.Error("Upload: ошибка при сохранении файла", zap.Uint64("equipment_id", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Файл успешно прикреплён", http.StatusCreated)
}

func (c *AttachmentController) List(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.attachmentService.List(ctx.Request().Context(), equipmentID)
	if err != nil {
		c.logger.Error("List: ошибка при получении файлов", zap.Uint64("equipment_id", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список файлов успешно получен", http.StatusOK)
}

func (c *AttachmentController) Delete(ctx echo.Context) error {
	fileID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.attachmentService.Delete(ctx.Request().Context(), fileID); err != nil {
		c.logger.Error("Delete: ошибка при удалении файла", zap.Uint64("file_id", fileID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Файл успешно удалён", http.StatusOK)
}
