package seeders

import "deltica/pkg/constants"

type equipmentSeed struct {
	Name            string
	Model           string
	Type            string
	Specs           string
	FactoryNumber   string
	InventoryNumber string
	Year            int

	VerificationType     string
	RegistryNumber       string
	VerificationInterval int
	VerificationDate     string
	VerificationPlan     string
	VerificationState    string

	Department        string
	ResponsiblePerson string
	VerifierOrg       string

	BudgetItem string
	CodeRate   string
	CostRate   float64
	Quantity   int
}

var registryData = []equipmentSeed{
	{
		Name: "Мультиметр цифровой", Model: "Fluke 87V", Type: constants.EquipmentTypeSI,
		Specs: "0.05% DC, CAT IV 600 В", FactoryNumber: "48210357", InventoryNumber: "INV-0001", Year: 2021,
		VerificationType: constants.VerificationTypeVerification, RegistryNumber: "33374-19",
		VerificationInterval: 12, VerificationDate: "2026-02-10", VerificationPlan: "2027-02-10",
		VerificationState: constants.StateWork,
		Department:        "Лаборатория электрических измерений", ResponsiblePerson: "Каримов Д. Р.",
		VerifierOrg: "ЦСМ Согдийской области",
		BudgetItem:  "02.10.31.2", CodeRate: "T-104", CostRate: 180.0, Quantity: 1,
	},
	{
		Name: "Штангенциркуль", Model: "ШЦ-I-150-0.05", Type: constants.EquipmentTypeSI,
		Specs: "диапазон 0-150 мм", FactoryNumber: "150778", InventoryNumber: "INV-0002", Year: 2019,
		VerificationType: constants.VerificationTypeCalibration, RegistryNumber: "",
		VerificationInterval: 24, VerificationDate: "2025-06-20", VerificationPlan: "2027-06-20",
		VerificationState: constants.StateWork,
		Department:        "Механический цех", ResponsiblePerson: "Азизова М. С.",
		VerifierOrg: "Метрологическая служба предприятия",
		BudgetItem:  "02.10.31.2", CodeRate: "T-012", CostRate: 45.0, Quantity: 2,
	},
	{
		Name: "Камера тепла и холода", Model: "КТХ-74-65/165", Type: constants.EquipmentTypeIO,
		Specs: "-65..+165 °C", FactoryNumber: "0457", InventoryNumber: "INV-0003", Year: 2016,
		VerificationType: constants.VerificationTypeCertification, RegistryNumber: "",
		VerificationInterval: 12, VerificationDate: "2025-11-03", VerificationPlan: "2026-11-03",
		VerificationState: constants.StateRepair,
		Department:        "Испытательная лаборатория", ResponsiblePerson: "Рахимов Ф. А.",
		VerifierOrg: "Таджикстандарт",
		BudgetItem:  "02.10.44.1", CodeRate: "T-230", CostRate: 950.0, Quantity: 1,
	},
	{
		Name: "Манометр образцовый", Model: "МО-11202", Type: constants.EquipmentTypeSI,
		Specs: "кл. 0.15, 0-60 кгс/см2", FactoryNumber: "88412", InventoryNumber: "INV-0004", Year: 2023,
		VerificationType: constants.VerificationTypeVerification, RegistryNumber: "5343-76",
		VerificationInterval: 12, VerificationDate: "2025-09-01", VerificationPlan: "2026-09-01",
		VerificationState: constants.StateStorage,
		Department:        "Служба главного энергетика", ResponsiblePerson: "Назаров У. К.",
		VerifierOrg: "ЦСМ Согдийской области",
		BudgetItem:  "02.10.31.2", CodeRate: "T-077", CostRate: 120.0, Quantity: 1,
	},
}
