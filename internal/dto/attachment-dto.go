package dto

type AttachmentResponseDTO struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	UploadedAt  string `json:"uploaded_at"`
	URL         string `json:"url"`
}
