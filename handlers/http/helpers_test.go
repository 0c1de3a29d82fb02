package httpHandler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe-server/db"
	"recipe-server/entities"
	"recipe-server/repositories"
	"recipe-server/server"
	"recipe-server/usecases"
)

type testEnv struct {
	app      *gin.Engine
	db       db.Database
	users    *usecases.UserUseCase
	mediaDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// unique shared-cache name so parallel tests don't see each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	database := db.FromGorm(gdb)
	mediaDir := t.TempDir()

	return &testEnv{
		app:      server.Routes(database, mediaDir),
		db:       database,
		users:    usecases.NewUserUseCase(repositories.NewUserPgRepository(database), repositories.NewTokenPgRepository(database)),
		mediaDir: mediaDir,
	}
}

func (e *testEnv) createUser(t *testing.T, email, password string) *entities.User {
	t.Helper()
	user, err := e.users.CreateUser(email, password, "")
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *entities.User) string {
	t.Helper()
	token, err := e.users.IssueToken(user.ID)
	require.NoError(t, err)
	return token.Key
}

func (e *testEnv) createTag(t *testing.T, user *entities.User, name string) entities.Tag {
	t.Helper()
	tag := entities.Tag{Name: name, UserID: user.ID}
	require.NoError(t, e.db.GetDB().Create(&tag).Error)
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, user *entities.User, name string) entities.Ingredient {
	t.Helper()
	ingredient := entities.Ingredient{Name: name, UserID: user.ID}
	require.NoError(t, e.db.GetDB().Create(&ingredient).Error)
	return ingredient
}

func (e *testEnv) createRecipe(t *testing.T, user *entities.User, title string) entities.Recipe {
	t.Helper()
	recipe := entities.Recipe{Title: title, TimeMinutes: 10, Price: 5.00, UserID: user.ID}
	require.NoError(t, e.db.GetDB().Create(&recipe).Error)
	return recipe
}

func (e *testEnv) attachTag(t *testing.T, recipe *entities.Recipe, tag entities.Tag) {
	t.Helper()
	require.NoError(t, e.db.GetDB().Model(recipe).Association("Tags").Append(&tag))
}

func (e *testEnv) attachIngredient(t *testing.T, recipe *entities.Recipe, ingredient entities.Ingredient) {
	t.Helper()
	require.NoError(t, e.db.GetDB().Model(recipe).Association("Ingredients").Append(&ingredient))
}

// request performs a JSON request; body may be nil.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	e.app.ServeHTTP(w, req)
	return w
}

// upload performs a multipart POST with a single file field named "image".
func (e *testEnv) upload(t *testing.T, path, token string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "upload.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	e.app.ServeHTTP(w, req)
	return w
}

type attributeJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type attributeListEnvelope struct {
	Data  []attributeJSON `json:"data"`
	Count int             `json:"count"`
}

type recipeJSON struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipeDetailJSON struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       float64         `json:"price"`
	Link        string          `json:"link"`
	Image       string          `json:"image"`
	Tags        []attributeJSON `json:"tags"`
	Ingredients []attributeJSON `json:"ingredients"`
}

type recipeListEnvelope struct {
	Data  []recipeJSON `json:"data"`
	Count int          `json:"count"`
}

type recipeEnvelope struct {
	Data recipeJSON `json:"data"`
}

type recipeDetailEnvelope struct {
	Data recipeDetailJSON `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
