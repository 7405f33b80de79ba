package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type StoreUserRepoMock struct{ mock.Mock }

func (m *StoreUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in StoreUsecase tests")
}

func (m *StoreUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *StoreUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in StoreUsecase tests")
}

func (m *StoreUserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	panic("not used in StoreUsecase tests")
}

func (m *StoreUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in StoreUsecase tests")
}

func (m *StoreUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	panic("not used in StoreUsecase tests")
}

type StoreStoreRepoMock struct{ mock.Mock }

func (m *StoreStoreRepoMock) FindByID(ctx context.Context, storeID string) (model.Store, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreStoreRepoMock) Update(ctx context.Context, store model.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *StoreStoreRepoMock) SoftDelete(ctx context.Context, storeID string, deletedBy string) error {
	args := m.Called(ctx, storeID, deletedBy)
	return args.Error(0)
}

type StoreLocationRepoMock struct{ mock.Mock }

func (m *StoreLocationRepoMock) FindByID(ctx context.Context, locationID string) (model.Location, error) {
	args := m.Called(ctx, locationID)
	l, _ := args.Get(0).(model.Location)
	return l, args.Error(1)
}

type StoreCategoryRepoMock struct{ mock.Mock }

func (m *StoreCategoryRepoMock) FindByID(ctx context.Context, categoryID string) (model.StoreCategory, error) {
	args := m.Called(ctx, categoryID)
	c, _ := args.Get(0).(model.StoreCategory)
	return c, args.Error(1)
}

type StoreAuditRepoMock struct{ mock.Mock }

func (m *StoreAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// トランザクションをそのまま実行するだけのstub
type storeTxRepos struct {
	stores repo.StoreRepository
	audits repo.AuditLogRepository
}

func (r *storeTxRepos) Addresses() repo.AddressRepository  { panic("not used") }
func (r *storeTxRepos) Stores() repo.StoreRepository       { return r.stores }
func (r *storeTxRepos) AuditLogs() repo.AuditLogRepository { return r.audits }

type storeTxManagerStub struct {
	stores repo.StoreRepository
	audits repo.AuditLogRepository
}

func (m *storeTxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&storeTxRepos{stores: m.stores, audits: m.audits})
}

type storeMocks struct {
	users      *StoreUserRepoMock
	stores     *StoreStoreRepoMock
	locations  *StoreLocationRepoMock
	categories *StoreCategoryRepoMock
	audits     *StoreAuditRepoMock
}

func newStoreUsecaseForTest() (*usecase.StoreUsecase, storeMocks) {
	m := storeMocks{
		users:      new(StoreUserRepoMock),
		stores:     new(StoreStoreRepoMock),
		locations:  new(StoreLocationRepoMock),
		categories: new(StoreCategoryRepoMock),
		audits:     new(StoreAuditRepoMock),
	}
	uc := usecase.NewStoreUsecase(
		m.users, m.stores, m.locations, m.categories,
		&storeTxManagerStub{stores: m.stores, audits: m.audits},
	)
	return uc, m
}

func strPtr(s string) *string { return &s }

func sampleStore() model.Store {
	return model.Store{
		ID:          "store-1",
		Name:        "Old Name",
		Description: "old desc",
		LocationID:  "loc-1",
		Location:    model.Location{ID: "loc-1", Name: "Gangnam Branch", City: "Seoul"},
		CategoryID:  "cat-1",
		Category:    model.StoreCategory{ID: "cat-1", Name: "Korean Food"},
	}
}

// =====================
// GetByID
// =====================

func TestStoreUsecase_GetByID_Success(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.stores.On("FindByID", mock.Anything, "store-1").Return(sampleStore(), nil)

	out, err := uc.GetByID(context.Background(), "store-1")
	assert.NoError(t, err)
	assert.Equal(t, "store-1", out.ID)
	assert.Equal(t, "Gangnam Branch", out.Location.Name)
	assert.Equal(t, "Korean Food", out.Category.Name)
}

func TestStoreUsecase_GetByID_NotFound(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.stores.On("FindByID", mock.Anything, "missing").Return(model.Store{}, repo.ErrNotFound)

	_, err := uc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrStoreNotFound)
}

// =====================
// Update
// =====================

// location_idがnullなら所在地は変わらず、category_idと名前だけ変わる
func TestStoreUsecase_Update_PartialRefs(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Username: "owner1", Role: model.RoleOwner}, nil)
	m.stores.On("FindByID", mock.Anything, "store-1").Return(sampleStore(), nil)
	m.categories.On("FindByID", mock.Anything, "cat-2").
		Return(model.StoreCategory{ID: "cat-2", Name: "Chicken"}, nil)
	m.stores.On("Update", mock.Anything, mock.MatchedBy(func(s model.Store) bool {
		return s.ID == "store-1" &&
			s.Name == "New Name" &&
			s.LocationID == "loc-1" &&
			s.CategoryID == "cat-2"
	})).Return(nil)
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStore && l.ResourceID == "store-1" && l.ActorUserID == 10
	})).Return(nil)

	out, err := uc.Update(context.Background(), 10, "store-1", usecase.StoreUpdateRequest{
		Name:        "New Name",
		Description: "new desc",
		LocationID:  nil,
		CategoryID:  strPtr("cat-2"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", out.Name)
	assert.Equal(t, "loc-1", out.Location.ID)
	assert.Equal(t, "cat-2", out.Category.ID)

	m.locations.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	m.stores.AssertExpectations(t)
	m.audits.AssertExpectations(t)
}

// CUSTOMERは店舗を変更できない
func TestStoreUsecase_Update_ForbiddenForCustomer(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Username: "cust1", Role: model.RoleCustomer}, nil)

	_, err := uc.Update(context.Background(), 7, "store-1", usecase.StoreUpdateRequest{Name: "x"})
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	m.stores.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	m.stores.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStoreUsecase_Update_LocationNotFound(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Username: "owner1", Role: model.RoleOwner}, nil)
	m.stores.On("FindByID", mock.Anything, "store-1").Return(sampleStore(), nil)
	m.locations.On("FindByID", mock.Anything, "missing").
		Return(model.Location{}, repo.ErrNotFound)

	_, err := uc.Update(context.Background(), 10, "store-1", usecase.StoreUpdateRequest{
		Name:       "New Name",
		LocationID: strPtr("missing"),
	})
	assert.ErrorIs(t, err, usecase.ErrLocationNotFound)

	m.stores.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStoreUsecase_Update_StoreNotFound(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Username: "owner1", Role: model.RoleOwner}, nil)
	m.stores.On("FindByID", mock.Anything, "missing").Return(model.Store{}, repo.ErrNotFound)

	_, err := uc.Update(context.Background(), 10, "missing", usecase.StoreUpdateRequest{Name: "x"})
	assert.ErrorIs(t, err, usecase.ErrStoreNotFound)
}

// =====================
// Delete
// =====================

// 削除者のusernameがスタンプされる
func TestStoreUsecase_Delete_StampsUsername(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Username: "owner1", Role: model.RoleOwner}, nil)
	m.stores.On("FindByID", mock.Anything, "store-1").Return(sampleStore(), nil)
	m.stores.On("SoftDelete", mock.Anything, "store-1", "owner1").Return(nil)
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteStore && l.ResourceID == "store-1"
	})).Return(nil)

	err := uc.Delete(context.Background(), 10, "store-1")
	assert.NoError(t, err)
	m.stores.AssertExpectations(t)
	m.audits.AssertExpectations(t)
}

func TestStoreUsecase_Delete_ForbiddenForCustomer(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Username: "cust1", Role: model.RoleCustomer}, nil)

	err := uc.Delete(context.Background(), 7, "store-1")
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	m.stores.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

// 削除済みの店舗をもう一度消すとnot found
func TestStoreUsecase_Delete_AlreadyDeleted(t *testing.T) {
	uc, m := newStoreUsecaseForTest()

	m.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Username: "owner1", Role: model.RoleOwner}, nil)
	m.stores.On("FindByID", mock.Anything, "store-1").Return(model.Store{}, repo.ErrNotFound)

	err := uc.Delete(context.Background(), 10, "store-1")
	assert.ErrorIs(t, err, usecase.ErrStoreNotFound)
}
