package usecases_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe-server/db"
	"recipe-server/entities"
	"recipe-server/repositories"
	"recipe-server/usecases"
)

func newTestDB(t *testing.T) db.Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return db.FromGorm(gdb)
}

func newUserUseCase(t *testing.T) (*usecases.UserUseCase, db.Database) {
	t.Helper()
	database := newTestDB(t)
	return usecases.NewUserUseCase(
		repositories.NewUserPgRepository(database),
		repositories.NewTokenPgRepository(database),
	), database
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"test@GMAIL.COM", "test@gmail.com"},
		{"Test@Example.Com", "Test@example.com"},
		{"plainstring", "plainstring"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, usecases.NormalizeEmail(c.in))
	}
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	uc, _ := newUserUseCase(t)

	user, err := uc.CreateUser("test@GMAIL.COM", "testpass", "")

	require.NoError(t, err)
	assert.Equal(t, "test@gmail.com", user.Email)
}

func TestCreateUserRequiresEmail(t *testing.T) {
	uc, database := newUserUseCase(t)

	_, err := uc.CreateUser("", "testpass", "")

	require.Error(t, err)

	var count int64
	database.GetDB().Model(&entities.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateUserDefaults(t *testing.T) {
	uc, _ := newUserUseCase(t)

	user, err := uc.CreateUser("test@gmail.com", "testpass", "Test Name")

	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
	assert.Equal(t, "Test Name", user.Name)
}

func TestCreateUserHashesPassword(t *testing.T) {
	uc, _ := newUserUseCase(t)

	user, err := uc.CreateUser("test@gmail.com", "testpass", "")

	require.NoError(t, err)
	assert.NotEqual(t, "testpass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("testpass")))
}

func TestCreateSuperuser(t *testing.T) {
	uc, _ := newUserUseCase(t)

	user, err := uc.CreateSuperuser("admin@gmail.com", "testpass")

	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)

	// flags survive the round trip
	stored, err := uc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsStaff)
	assert.True(t, stored.IsSuperuser)
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newUserUseCase(t)
	_, err := uc.CreateUser("test@GMAIL.COM", "testpass", "")
	require.NoError(t, err)

	// lookup goes through normalization too
	user, err := uc.Authenticate("test@gmail.com", "testpass")
	require.NoError(t, err)
	assert.Equal(t, "test@gmail.com", user.Email)

	_, err = uc.Authenticate("test@gmail.com", "wrong")
	assert.Error(t, err)

	_, err = uc.Authenticate("nobody@gmail.com", "testpass")
	assert.Error(t, err)
}

func TestAuthenticateInactive(t *testing.T) {
	uc, _ := newUserUseCase(t)
	user, err := uc.CreateUser("test@gmail.com", "testpass", "")
	require.NoError(t, err)
	_, err = uc.ToggleActive(user.ID)
	require.NoError(t, err)

	_, err = uc.Authenticate("test@gmail.com", "testpass")
	assert.Error(t, err)
}

func TestIssueAndResolveToken(t *testing.T) {
	uc, _ := newUserUseCase(t)
	user, err := uc.CreateUser("test@gmail.com", "testpass", "")
	require.NoError(t, err)

	token, err := uc.IssueToken(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token.Key)

	resolved, err := uc.UserByToken(token.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = uc.UserByToken("unknown")
	assert.Error(t, err)

	_, err = uc.UserByToken("")
	assert.Error(t, err)
}

func TestUserByTokenInactive(t *testing.T) {
	uc, _ := newUserUseCase(t)
	user, err := uc.CreateUser("test@gmail.com", "testpass", "")
	require.NoError(t, err)
	token, err := uc.IssueToken(user.ID)
	require.NoError(t, err)
	_, err = uc.ToggleActive(user.ID)
	require.NoError(t, err)

	_, err = uc.UserByToken(token.Key)
	assert.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	uc, _ := newUserUseCase(t)
	user, err := uc.CreateUser("test@gmail.com", "testpass", "")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(user.ID))

	users, err := uc.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.Error(t, uc.DeleteUser(user.ID))
}
