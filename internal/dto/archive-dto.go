package dto

type ArchiveRequestDTO struct {
	ArchiveReason string `json:"archive_reason"`
}

type UpdateArchiveReasonDTO struct {
	ArchiveReason string `json:"archive_reason" validate:"required"`
}

type ArchivedEquipmentDTO struct {
	ID              uint64 `json:"id"`
	OriginalID      uint64 `json:"original_id"`
	EquipmentName   string `json:"equipment_name"`
	EquipmentModel  string `json:"equipment_model"`
	EquipmentType   string `json:"equipment_type"`
	EquipmentSpecs  string `json:"equipment_specs"`
	FactoryNumber   string `json:"factory_number"`
	InventoryNumber string `json:"inventory_number"`
	EquipmentYear   int    `json:"equipment_year"`
	ArchiveReason   string `json:"archive_reason"`
	ArchivedAt      string `json:"archived_at"`
}

// ArchiveFullDTO - полный архивный агрегат для карточки архива.
// Отсутствующие связанные записи заменяются задокументированными
// дефолтами, чтобы представление всегда было полным.
type ArchiveFullDTO struct {
	ArchivedEquipmentDTO

	VerificationType     string `json:"verification_type"`
	RegistryNumber       string `json:"registry_number"`
	VerificationInterval int    `json:"verification_interval"`
	VerificationDate     string `json:"verification_date"`
	VerificationDue      string `json:"verification_due"`
	VerificationPlan     string `json:"verification_plan"`
	VerificationState    string `json:"verification_state"`
	Status               string `json:"status"`

	Department        string `json:"department"`
	ResponsiblePerson string `json:"responsible_person"`
	VerifierOrg       string `json:"verifier_org"`

	BudgetItem    string   `json:"budget_item"`
	CodeRate      string   `json:"code_rate"`
	CostRate      *float64 `json:"cost_rate"`
	Quantity      int      `json:"quantity"`
	Coefficient   float64  `json:"coefficient"`
	TotalCost     *float64 `json:"total_cost"`
	InvoiceNumber string   `json:"invoice_number"`
	PaidAmount    *float64 `json:"paid_amount"`
	PaymentDate   string   `json:"payment_date"`

	Files []AttachmentResponseDTO `json:"files"`
}
