package constants

// Типы оборудования.
const (
	EquipmentTypeSI = "SI" // средство измерения
	EquipmentTypeIO = "IO" // испытательное оборудование
)

// Виды метрологических работ.
const (
	VerificationTypeCalibration   = "calibration"
	VerificationTypeVerification  = "verification"
	VerificationTypeCertification = "certification"
)

// Состояния жизненного цикла оборудования.
const (
	StateWork         = "state_work"
	StateStorage      = "state_storage"
	StateVerification = "state_verification"
	StateRepair       = "state_repair"
	StateArchived     = "state_archived"
)

// Отображаемые статусы. Для состояний вне работы статус дублирует
// состояние независимо от срока поверки.
const (
	StatusFit          = "status_fit"
	StatusExpired      = "status_expired"
	StatusExpiring     = "status_expiring"
	StatusStorage      = "status_storage"
	StatusVerification = "status_verification"
	StatusRepair       = "status_repair"
)

// Категории прикреплённых файлов.
const (
	FileTypeCertificate  = "certificate"
	FileTypePassport     = "passport"
	FileTypeTechnicalDoc = "technical_doc"
	FileTypeOther        = "other"
)

// ExpiringWindowDays - за сколько дней до окончания срока поверки
// статус переходит в status_expiring (граница включительно).
const ExpiringWindowDays = 14

// Значения по умолчанию для неполных архивных агрегатов.
const (
	DefaultVerificationInterval = 12
	DefaultQuantity             = 1
	DefaultCoefficient          = 1.0

	// DefaultBudgetItem подставляется при восстановлении, если статья
	// бюджета в архиве оказалась пустой.
	DefaultBudgetItem = "00.00.00.0"
)

// CacheKeyRegistry - ключ кеша объединённого реестра оборудования.
const CacheKeyRegistry = "deltica:registry:rows"
