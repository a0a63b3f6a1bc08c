package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistryRepositoryInterface - чтение объединённого реестра:
// оборудование LEFT JOIN поверка, ответственность и финансы.
type RegistryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.RegistryRow, error)
	GetByID(ctx context.Context, equipmentID uint64) (*entities.RegistryRow, error)
}

type RegistryRepository struct {
	storage *pgxpool.Pool
}

func NewRegistryRepository(storage *pgxpool.Pool) RegistryRepositoryInterface {
	return &RegistryRepository{
		storage: storage,
	}
}

func registryBuilder() sq.SelectBuilder {
	return sq.Select(
		"e.id",
		"e.equipment_name",
		"e.equipment_model",
		"e.equipment_type",
		"e.factory_number",
		"e.inventory_number",
		"e.equipment_year",
		"v.verification_type",
		"v.registry_number",
		"v.verification_interval",
		"v.verification_date",
		"v.verification_due",
		"v.verification_plan",
		"v.verification_state",
		"v.status",
		"resp.department",
		"resp.responsible_person",
		"resp.verifier_org",
		"f.budget_item",
		"f.code_rate",
		"f.cost_rate",
		"f.quantity",
		"f.coefficient",
		"f.total_cost",
		"f.invoice_number",
		"f.paid_amount",
		"f.payment_date",
	).
		From(equipmentTable + " e").
		LeftJoin(verificationTable + " v ON v.equipment_id = e.id").
		LeftJoin(responsibilityTable + " resp ON resp.equipment_id = e.id").
		LeftJoin(financeTable + " f ON f.equipment_id = e.id").
		PlaceholderFormat(sq.Dollar)
}

func scanRegistryRow(row pgx.Row, r *entities.RegistryRow) error {
	return row.Scan(
		&r.EquipmentID,
		&r.EquipmentName,
		&r.EquipmentModel,
		&r.EquipmentType,
		&r.FactoryNumber,
		&r.InventoryNumber,
		&r.EquipmentYear,
		&r.VerificationType,
		&r.RegistryNumber,
		&r.VerificationInterval,
		&r.VerificationDate,
		&r.VerificationDue,
		&r.VerificationPlan,
		&r.VerificationState,
		&r.Status,
		&r.Department,
		&r.ResponsiblePerson,
		&r.VerifierOrg,
		&r.BudgetItem,
		&r.CodeRate,
		&r.CostRate,
		&r.Quantity,
		&r.Coefficient,
		&r.TotalCost,
		&r.InvoiceNumber,
		&r.PaidAmount,
		&r.PaymentDate,
	)
}

func (r *RegistryRepository) GetAll(ctx context.Context) ([]entities.RegistryRow, error) {
	query, args, err := registryBuilder().OrderBy("e.id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.RegistryRow
	for rows.Next() {
		var item entities.RegistryRow
		if err := scanRegistryRow(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *RegistryRepository) GetByID(ctx context.Context, equipmentID uint64) (*entities.RegistryRow, error) {
	query, args, err := registryBuilder().Where(sq.Eq{"e.id": equipmentID}).ToSql()
	if err != nil {
		return nil, err
	}

	var item entities.RegistryRow
	if err := scanRegistryRow(r.storage.QueryRow(ctx, query, args...), &item); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
