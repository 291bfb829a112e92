package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func setupCallTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:callsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Tenant{}, &models.Restaurant{}, &models.Table{}, &models.User{}, &models.WaiterCall{})
	if err != nil {
		t.Fatal(err)
	}
	db.Exec("DELETE FROM waiter_calls")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM tables")
	db.Exec("DELETE FROM restaurants")
	db.Exec("DELETE FROM tenants")
	db.Exec("DELETE FROM sqlite_sequence")

	tenant := models.Tenant{Name: "Demo Group"}
	db.Create(&tenant)
	restaurant := models.Restaurant{TenantID: tenant.ID, Name: "Demo Restaurant", Currency: "TRY"}
	db.Create(&restaurant)
	table := models.Table{TenantID: tenant.ID, RestaurantID: restaurant.ID, Code: "T01", Name: "Table 1", IsActive: true}
	db.Create(&table)

	db.Create(&models.User{TenantID: tenant.ID, Name: "Ali", Email: "ali@demo.com", Hash: "x", Role: models.RoleWaiter, IsActive: true})
	db.Create(&models.User{TenantID: tenant.ID, Name: "Ayse", Email: "ayse@demo.com", Hash: "x", Role: models.RoleWaiter, IsActive: true})
	db.Create(&models.User{TenantID: tenant.ID, Name: "Chef", Email: "chef@demo.com", Hash: "x", Role: models.RoleChef, IsActive: true})
	return db
}

func TestCreateCallAssignsWaiter(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	result, err := svc.Create(1, 1, 1, models.CallWaiter, "water please")
	assert.NoError(t, err)
	assert.Equal(t, models.CallPending, result.Call.Status)
	assert.Equal(t, "T01", result.Call.Table.Code)

	// Penunjukan hanya dari waiter aktif, chef tidak ikut
	assert.NotNil(t, result.AssignedWaiter)
	assert.Equal(t, models.RoleWaiter, result.AssignedWaiter.Role)
}

func TestCreateCallDeterministicAssignment(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	// Hash dari ID yang sama selalu memilih waiter yang sama
	first := svc.pickWaiter(1, 42)
	second := svc.pickWaiter(1, 42)
	assert.NotNil(t, first)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateCallNoWaiters(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	db.Model(&models.User{}).Where("role = ?", models.RoleWaiter).Update("is_active", false)

	result, err := svc.Create(1, 1, 1, models.CallWaiter, "")
	assert.NoError(t, err)
	assert.Nil(t, result.AssignedWaiter)
}

func TestCreateCallDeduplicatesPending(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	first, err := svc.Create(1, 1, 1, models.CallWaiter, "")
	assert.NoError(t, err)

	// Tipe sama masih PENDING -> Conflict dengan ID panggilan lama
	_, err = svc.Create(1, 1, 1, models.CallWaiter, "")
	assert.ErrorIs(t, err, utils.ErrConflict)

	var pending *PendingCallError
	assert.True(t, errors.As(err, &pending))
	assert.Equal(t, first.Call.ID, pending.CallID)

	var count int64
	db.Model(&models.WaiterCall{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Tipe lain boleh jalan paralel
	_, err = svc.Create(1, 1, 1, models.RequestBill, "")
	assert.NoError(t, err)
}

func TestCreateCallUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	_, err := svc.Create(1, 1, 999, models.CallWaiter, "")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateCallInvalidType(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	_, err := svc.Create(1, 1, 1, "BRING_KETCHUP", "")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdateCallStatusStampsTimestamps(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	result, err := svc.Create(1, 1, 1, models.CallWaiter, "")
	assert.NoError(t, err)
	callID := result.Call.ID

	acked, err := svc.UpdateStatus(1, callID, models.CallAcknowledged)
	assert.NoError(t, err)
	assert.Equal(t, models.CallAcknowledged, acked.Status)

	var stored models.WaiterCall
	db.First(&stored, callID)
	assert.NotNil(t, stored.AcknowledgedAt)
	assert.Nil(t, stored.CompletedAt)

	_, err = svc.UpdateStatus(1, callID, models.CallCompleted)
	assert.NoError(t, err)
	db.First(&stored, callID)
	assert.NotNil(t, stored.CompletedAt)

	_, err = svc.UpdateStatus(1, callID, "DONE")
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestDeleteCall(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	result, err := svc.Create(1, 1, 1, models.RequestBill, "")
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(1, result.Call.ID))

	var count int64
	db.Model(&models.WaiterCall{}).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.Delete(1, result.Call.ID), utils.ErrNotFound)
}

func TestListCallsDefaultsToActive(t *testing.T) {
	utils.InitLogger()
	db := setupCallTestDB(t)
	svc := NewWaiterCallService(db, realtime.NewHub())

	first, err := svc.Create(1, 1, 1, models.CallWaiter, "")
	assert.NoError(t, err)
	second, err := svc.Create(1, 1, 1, models.RequestBill, "")
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(1, second.Call.ID, models.CallCompleted)
	assert.NoError(t, err)

	calls, err := svc.List(1, 1, nil)
	assert.NoError(t, err)
	assert.Len(t, calls, 1)
	assert.Equal(t, first.Call.ID, calls[0].ID)

	all, err := svc.List(1, 1, []string{models.CallPending, models.CallCompleted})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
