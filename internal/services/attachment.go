package services

import (
	"context"
	"io"

	"deltica/internal/dto"
	"deltica/internal/entities"
	"deltica/internal/repositories"
	"deltica/pkg/filestorage"

	"go.uber.org/zap"
)

const attachmentPrefix = "equipment"

// AttachmentService - прикреплённые к оборудованию документы:
// свидетельства о поверке, паспорта, техническая документация.
type AttachmentService struct {
	fileRepo      repositories.EquipmentFileRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewAttachmentService(
	fileRepo repositories.EquipmentFileRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		fileRepo:      fileRepo,
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// Upload сохраняет байты в файловое хранилище и регистрирует метаданные.
// Если запись в БД не удалась, только что сохранённый файл убирается с диска.
func (s *AttachmentService) Upload(ctx context.Context, equipmentID uint64, reader io.Reader, fileName, fileType string, fileSize int64) (*dto.AttachmentResponseDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	filePath, err := s.fileStorage.Save(reader, fileName, attachmentPrefix)
	if err != nil {
		return nil, err
	}

	file := &entities.EquipmentFile{
		EquipmentID: equipmentID,
		FileName:    fileName,
		FilePath:    filePath,
		FileType:    fileType,
		FileSize:    fileSize,
	}
	if _, err := s.fileRepo.Create(ctx, file); err != nil {
		if removeErr := s.fileStorage.Delete(filePath); removeErr != nil {
			s.logger.Warn("не удалось убрать осиротевший файл",
				zap.String("file_path", filePath), zap.Error(removeErr))
		}
		return nil, err
	}

	s.logger.Info("файл прикреплён к оборудованию",
		zap.Uint64("equipment_id", equipmentID), zap.Uint64("file_id", file.ID))

	response := attachmentToDTO(file)
	return &response, nil
}

func (s *AttachmentService) List(ctx context.Context, equipmentID uint64) ([]dto.AttachmentResponseDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	files, err := s.fileRepo.FindAllByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttachmentResponseDTO, 0, len(files))
	for i := range files {
		result = append(result, attachmentToDTO(&files[i]))
	}
	return result, nil
}

// Delete удаляет метаданные, затем байты. Сбой удаления с диска запись
// уже не возвращает - он только логируется.
func (s *AttachmentService) Delete(ctx context.Context, fileID uint64) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(file.FilePath); err != nil {
		s.logger.Warn("не удалось удалить файл с диска",
			zap.String("file_path", file.FilePath), zap.Error(err))
	}

	s.logger.Info("файл откреплён", zap.Uint64("file_id", fileID))
	return nil
}

func attachmentToDTO(file *entities.EquipmentFile) dto.AttachmentResponseDTO {
	return dto.AttachmentResponseDTO{
		ID:          file.ID,
		EquipmentID: file.EquipmentID,
		FileName:    file.FileName,
		FileType:    file.FileType,
		FileSize:    file.FileSize,
		UploadedAt:  file.UploadedAt.Format("2006-01-02 15:04:05"),
		URL:         "/uploads/" + file.FilePath,
	}
}
