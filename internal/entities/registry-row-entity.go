package entities

import "github.com/aarondl/null/v8"

// RegistryRow - строка объединённого реестра: оборудование с поверкой,
// ответственностью и финансами через LEFT JOIN, любая из правых частей
// может отсутствовать. Status здесь - сырое хранимое значение; отображаемый
// статус пересчитывается сервисом от текущей даты при каждом чтении.
type RegistryRow struct {
	EquipmentID     uint64 `json:"equipment_id"`
	EquipmentName   string `json:"equipment_name"`
	EquipmentModel  string `json:"equipment_model"`
	EquipmentType   string `json:"equipment_type"`
	FactoryNumber   string `json:"factory_number"`
	InventoryNumber string `json:"inventory_number"`
	EquipmentYear   int    `json:"equipment_year"`

	VerificationType     null.String `json:"verification_type"`
	RegistryNumber       null.String `json:"registry_number"`
	VerificationInterval null.Int64  `json:"verification_interval"`
	VerificationDate     null.Time   `json:"verification_date"`
	VerificationDue      null.Time   `json:"verification_due"`
	VerificationPlan     null.Time   `json:"verification_plan"`
	VerificationState    null.String `json:"verification_state"`
	Status               null.String `json:"status"`

	Department        null.String `json:"department"`
	ResponsiblePerson null.String `json:"responsible_person"`
	VerifierOrg       null.String `json:"verifier_org"`

	BudgetItem    null.String  `json:"budget_item"`
	CodeRate      null.String  `json:"code_rate"`
	CostRate      null.Float64 `json:"cost_rate"`
	Quantity      null.Int64   `json:"quantity"`
	Coefficient   null.Float64 `json:"coefficient"`
	TotalCost     null.Float64 `json:"total_cost"`
	InvoiceNumber null.String  `json:"invoice_number"`
	PaidAmount    null.Float64 `json:"paid_amount"`
	PaymentDate   null.Time    `json:"payment_date"`
}
