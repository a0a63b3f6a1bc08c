package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// memStore - БД в памяти для тестов сервисов. Фальшивый менеджер транзакций
// снимает копию состояния перед вызовом и откатывает её при ошибке, так что
// атомарность переноса проверяется честно.
type memStore struct {
	nextEquipmentID uint64
	nextFileID      uint64
	nextArchivedID  uint64

	equipment      map[uint64]entities.Equipment
	verification   map[uint64]entities.Verification   // по equipment_id
	responsibility map[uint64]entities.Responsibility // по equipment_id
	finance        map[uint64]entities.Finance        // по equipment_id
	files          map[uint64]entities.EquipmentFile  // по id файла

	archived               map[uint64]entities.ArchivedEquipment
	archivedVerification   map[uint64]entities.ArchivedVerification   // по archived_equipment_id
	archivedResponsibility map[uint64]entities.ArchivedResponsibility // по archived_equipment_id
	archivedFinance        map[uint64]entities.ArchivedFinance        // по archived_equipment_id
	archivedFiles          map[uint64][]entities.ArchivedEquipmentFile

	failOnArchivedFinance bool
}

func newMemStore() *memStore {
	return &memStore{
		equipment:              map[uint64]entities.Equipment{},
		verification:           map[uint64]entities.Verification{},
		responsibility:         map[uint64]entities.Responsibility{},
		finance:                map[uint64]entities.Finance{},
		files:                  map[uint64]entities.EquipmentFile{},
		archived:               map[uint64]entities.ArchivedEquipment{},
		archivedVerification:   map[uint64]entities.ArchivedVerification{},
		archivedResponsibility: map[uint64]entities.ArchivedResponsibility{},
		archivedFinance:        map[uint64]entities.ArchivedFinance{},
		archivedFiles:          map[uint64][]entities.ArchivedEquipmentFile{},
	}
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memStore) snapshot() *memStore {
	clone := *s
	clone.equipment = copyMap(s.equipment)
	clone.verification = copyMap(s.verification)
	clone.responsibility = copyMap(s.responsibility)
	clone.finance = copyMap(s.finance)
	clone.files = copyMap(s.files)
	clone.archived = copyMap(s.archived)
	clone.archivedVerification = copyMap(s.archivedVerification)
	clone.archivedResponsibility = copyMap(s.archivedResponsibility)
	clone.archivedFinance = copyMap(s.archivedFinance)
	clone.archivedFiles = make(map[uint64][]entities.ArchivedEquipmentFile, len(s.archivedFiles))
	for k, v := range s.archivedFiles {
		clone.archivedFiles[k] = append([]entities.ArchivedEquipmentFile(nil), v...)
	}
	return &clone
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	saved := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(saved)
		return err
	}
	return nil
}

type fakeEquipmentRepo struct{ store *memStore }

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) CreateEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error) {
	r.store.nextEquipmentID++
	e := *equipment
	e.ID = r.store.nextEquipmentID
	r.store.equipment[e.ID] = e
	return e.ID, nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, equipment *entities.Equipment) error {
	if _, ok := r.store.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	e := *equipment
	e.ID = id
	r.store.equipment[id] = e
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.store.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.equipment, id)
	return nil
}

type fakeVerificationRepo struct{ store *memStore }

func (r *fakeVerificationRepo) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Verification, error) {
	v, ok := r.store.verification[equipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeVerificationRepo) CreateInTx(ctx context.Context, tx pgx.Tx, verification *entities.Verification) (uint64, error) {
	v := *verification
	v.ID = verification.EquipmentID
	r.store.verification[verification.EquipmentID] = v
	return v.ID, nil
}

func (r *fakeVerificationRepo) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, verification *entities.Verification) error {
	v := *verification
	v.EquipmentID = equipmentID
	r.store.verification[equipmentID] = v
	return nil
}

func (r *fakeVerificationRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	delete(r.store.verification, equipmentID)
	return nil
}

type fakeResponsibilityRepo struct{ store *memStore }

func (r *fakeResponsibilityRepo) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Responsibility, error) {
	resp, ok := r.store.responsibility[equipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &resp, nil
}

func (r *fakeResponsibilityRepo) CreateInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.Responsibility) (uint64, error) {
	resp := *responsibility
	resp.ID = responsibility.EquipmentID
	r.store.responsibility[responsibility.EquipmentID] = resp
	return resp.ID, nil
}

func (r *fakeResponsibilityRepo) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, responsibility *entities.Responsibility) error {
	resp := *responsibility
	resp.EquipmentID = equipmentID
	r.store.responsibility[equipmentID] = resp
	return nil
}

func (r *fakeResponsibilityRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	delete(r.store.responsibility, equipmentID)
	return nil
}

type fakeFinanceRepo struct{ store *memStore }

func (r *fakeFinanceRepo) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Finance, error) {
	f, ok := r.store.finance[equipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFinanceRepo) CreateInTx(ctx context.Context, tx pgx.Tx, finance *entities.Finance) (uint64, error) {
	f := *finance
	f.ID = finance.EquipmentID
	r.store.finance[finance.EquipmentID] = f
	return f.ID, nil
}

func (r *fakeFinanceRepo) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, finance *entities.Finance) error {
	f := *finance
	f.EquipmentID = equipmentID
	r.store.finance[equipmentID] = f
	return nil
}

func (r *fakeFinanceRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	delete(r.store.finance, equipmentID)
	return nil
}

type fakeFileRepo struct{ store *memStore }

func (r *fakeFileRepo) FindByID(ctx context.Context, id uint64) (*entities.EquipmentFile, error) {
	f, ok := r.store.files[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFileRepo) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.EquipmentFile, error) {
	var files []entities.EquipmentFile
	for _, f := range r.store.files {
		if f.EquipmentID == equipmentID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entities.EquipmentFile) (uint64, error) {
	r.store.nextFileID++
	file.ID = r.store.nextFileID
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	r.store.files[file.ID] = *file
	return file.ID, nil
}

func (r *fakeFileRepo) CreateInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) (uint64, error) {
	return r.Create(ctx, file)
}

func (r *fakeFileRepo) CreateRestoredInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) error {
	r.store.nextFileID++
	file.ID = r.store.nextFileID
	r.store.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.store.files[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.files, id)
	return nil
}

func (r *fakeFileRepo) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	for id, f := range r.store.files {
		if f.EquipmentID == equipmentID {
			delete(r.store.files, id)
		}
	}
	return nil
}

type fakeArchiveRepo struct{ store *memStore }

func (r *fakeArchiveRepo) GetAllArchived(ctx context.Context) ([]entities.ArchivedEquipment, error) {
	var items []entities.ArchivedEquipment
	for _, a := range r.store.archived {
		items = append(items, a)
	}
	return items, nil
}

func (r *fakeArchiveRepo) FindArchivedEquipment(ctx context.Context, id uint64) (*entities.ArchivedEquipment, error) {
	a, ok := r.store.archived[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *fakeArchiveRepo) FindArchivedVerification(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedVerification, error) {
	v, ok := r.store.archivedVerification[archivedEquipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeArchiveRepo) FindArchivedResponsibility(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedResponsibility, error) {
	resp, ok := r.store.archivedResponsibility[archivedEquipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &resp, nil
}

func (r *fakeArchiveRepo) FindArchivedFinance(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedFinance, error) {
	f, ok := r.store.archivedFinance[archivedEquipmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (r *fakeArchiveRepo) FindArchivedFiles(ctx context.Context, archivedEquipmentID uint64) ([]entities.ArchivedEquipmentFile, error) {
	return append([]entities.ArchivedEquipmentFile(nil), r.store.archivedFiles[archivedEquipmentID]...), nil
}

func (r *fakeArchiveRepo) CreateArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.ArchivedEquipment) (uint64, error) {
	r.store.nextArchivedID++
	a := *equipment
	a.ID = r.store.nextArchivedID
	r.store.archived[a.ID] = a
	return a.ID, nil
}

func (r *fakeArchiveRepo) CreateArchivedVerificationInTx(ctx context.Context, tx pgx.Tx, verification *entities.ArchivedVerification) error {
	r.store.archivedVerification[verification.ArchivedEquipmentID] = *verification
	return nil
}

func (r *fakeArchiveRepo) CreateArchivedResponsibilityInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.ArchivedResponsibility) error {
	r.store.archivedResponsibility[responsibility.ArchivedEquipmentID] = *responsibility
	return nil
}

func (r *fakeArchiveRepo) CreateArchivedFinanceInTx(ctx context.Context, tx pgx.Tx, finance *entities.ArchivedFinance) error {
	if r.store.failOnArchivedFinance {
		return errors.New("insert archived_finance: connection reset")
	}
	r.store.archivedFinance[finance.ArchivedEquipmentID] = *finance
	return nil
}

func (r *fakeArchiveRepo) CreateArchivedFileInTx(ctx context.Context, tx pgx.Tx, file *entities.ArchivedEquipmentFile) error {
	r.store.archivedFiles[file.ArchivedEquipmentID] = append(r.store.archivedFiles[file.ArchivedEquipmentID], *file)
	return nil
}

func (r *fakeArchiveRepo) UpdateArchiveReason(ctx context.Context, id uint64, reason string) (*entities.ArchivedEquipment, error) {
	a, ok := r.store.archived[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a.ArchiveReason.SetValid(reason)
	r.store.archived[id] = a
	return &a, nil
}

func (r *fakeArchiveRepo) DeleteArchivedRelatedInTx(ctx context.Context, tx pgx.Tx, archivedEquipmentID uint64) error {
	delete(r.store.archivedVerification, archivedEquipmentID)
	delete(r.store.archivedResponsibility, archivedEquipmentID)
	delete(r.store.archivedFinance, archivedEquipmentID)
	delete(r.store.archivedFiles, archivedEquipmentID)
	return nil
}

func (r *fakeArchiveRepo) DeleteArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.store.archived[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.archived, id)
	return nil
}

type fakeCacheRepo struct {
	values  map[string]string
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: map[string]string{}}
}

func (c *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache: key not found")
	}
	return v, nil
}

func (c *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	path := prefix + "/" + originalFileName
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeFileStorage) Delete(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}
