package services

import (
	"strings"
	"testing"

	"pethotel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIdentityService_ResolveByAccountID(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	existing := models.Customer{FullName: "Somsri P.", Phone: "0812223333"}
	require.NoError(t, db.Create(&existing).Error)

	got, err := svc.Resolve(nil, &existing.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	missing := uint(9999)
	_, err = svc.Resolve(nil, &missing, "", "")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestIdentityService_ResolveByPhoneReusesExisting(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	existing := models.Customer{FullName: "Anan K.", Phone: "0899990000"}
	require.NoError(t, db.Create(&existing).Error)

	got, err := svc.Resolve(nil, nil, "Different Name", "0899990000")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIdentityService_ProvisionsWalkIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	got, err := svc.Resolve(nil, nil, "Walk In Owner", "0861112222")
	require.NoError(t, err)
	require.NotZero(t, got.ID)
	assert.True(t, got.WalkIn)
	assert.Equal(t, "Walk In Owner", got.FullName)
	assert.True(t, strings.HasPrefix(got.Username, "walkin-"), "username %q", got.Username)
	// placeholder credential is a bcrypt hash of a random secret, never a usable password
	assert.True(t, strings.HasPrefix(got.Password, "$2"), "password should be hashed")
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("")))

	// resolving the same phone again reuses the record
	again, err := svc.Resolve(nil, nil, "Walk In Owner", "0861112222")
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIdentityService_ValidationErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	var ve *ValidationError

	_, err := svc.Resolve(nil, nil, "Name Only", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ownerPhone", ve.Field)

	_, err = svc.Resolve(nil, nil, "", "0801234567")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ownerName", ve.Field)
}

func TestIdentityService_DuplicateInsertFallsBackToLookup(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	// simulate losing the provisioning race: the phone row appears after the
	// not-found lookup would have happened
	winner := models.Customer{FullName: "Winner", Phone: "0877776666", WalkIn: true}
	require.NoError(t, db.Create(&winner).Error)

	got, err := svc.provisionWalkIn(db, "Loser", "0877776666")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}
