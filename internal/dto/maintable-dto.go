package dto

// CreateMainTableDTO - полный агрегат для регистрации оборудования.
// Даты передаются строками в формате ГГГГ-ММ-ДД. verification_due и status
// в запросе не принимаются: их считает ядро.
type CreateMainTableDTO struct {
	EquipmentName   string `json:"equipment_name" validate:"required"`
	EquipmentModel  string `json:"equipment_model" validate:"required"`
	EquipmentType   string `json:"equipment_type" validate:"required,oneof=SI IO"`
	EquipmentSpecs  string `json:"equipment_specs"`
	FactoryNumber   string `json:"factory_number" validate:"required"`
	InventoryNumber string `json:"inventory_number" validate:"required"`
	EquipmentYear   int    `json:"equipment_year" validate:"required,gte=1900,lte=2100"`

	VerificationType     string `json:"verification_type" validate:"required,oneof=calibration verification certification"`
	RegistryNumber       string `json:"registry_number"`
	VerificationInterval int    `json:"verification_interval" validate:"required,interval12"`
	VerificationDate     string `json:"verification_date" validate:"required"`
	VerificationPlan     string `json:"verification_plan" validate:"required"`
	VerificationState    string `json:"verification_state" validate:"required,oneof=state_work state_storage state_verification state_repair state_archived"`

	Department        string `json:"department" validate:"required"`
	ResponsiblePerson string `json:"responsible_person" validate:"required"`
	VerifierOrg       string `json:"verifier_org" validate:"required"`

	BudgetItem  string   `json:"budget_item" validate:"required"`
	CodeRate    string   `json:"code_rate"`
	CostRate    *float64 `json:"cost_rate"`
	Quantity    int      `json:"quantity" validate:"required,gte=1"`
	Coefficient float64  `json:"coefficient"`
	// total_cost приходит от вызывающей стороны и не пересчитывается ядром
	TotalCost     *float64 `json:"total_cost"`
	InvoiceNumber string   `json:"invoice_number"`
	PaidAmount    *float64 `json:"paid_amount"`
	PaymentDate   string   `json:"payment_date"`
}

// UpdateMainTableDTO - обновление всегда полная замена всех четырёх групп,
// как и при создании.
type UpdateMainTableDTO = CreateMainTableDTO

// MainTableResponseDTO - строка объединённого реестра. Для оборудования без
// поверки/ответственности/финансов соответствующие поля пустые.
type MainTableResponseDTO struct {
	EquipmentID     uint64 `json:"equipment_id"`
	EquipmentName   string `json:"equipment_name"`
	EquipmentModel  string `json:"equipment_model"`
	EquipmentType   string `json:"equipment_type"`
	FactoryNumber   string `json:"factory_number"`
	InventoryNumber string `json:"inventory_number"`
	EquipmentYear   int    `json:"equipment_year"`

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
}

// EquipmentFullDTO - полные данные оборудования для формы редактирования,
// с дефолтами для отсутствующих связанных записей.
type EquipmentFullDTO struct {
	EquipmentName   string `json:"equipment_name"`
	EquipmentModel  string `json:"equipment_model"`
	EquipmentType   string `json:"equipment_type"`
	EquipmentSpecs  string `json:"equipment_specs"`
	FactoryNumber   string `json:"factory_number"`
	InventoryNumber string `json:"inventory_number"`
	EquipmentYear   int    `json:"equipment_year"`

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
}
