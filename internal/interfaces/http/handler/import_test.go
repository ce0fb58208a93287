package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/identity"
	catalogimport "github.com/shopapi/backend/internal/infrastructure/import"
	"github.com/shopapi/backend/internal/infrastructure/persistence"
	"github.com/shopapi/backend/internal/infrastructure/persistence/testdb"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const toolsDocument = `{"shop":"Acme","categories":[{"id":1,"name":"Tools"}],"goods":[
	{"id":10,"name":"Hammer","category":1,"price":"9.99","price_rrc":"12.99","quantity":5,"parameters":{"weight":"1kg"}}
]}`

func newImportRouter(t *testing.T, maxSize int64) (*gin.Engine, access.Actor) {
	t.Helper()
	db := testdb.New(t)
	user, err := identity.NewUser(gofakeit.Email(), gofakeit.Username(), "secret123", identity.UserTypeShop)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(db).Create(context.Background(), user))

	service := catalogapp.NewImportService(
		persistence.NewGormTransactionScope(db).Catalog(),
		catalogimport.NewParser(),
		nil,
		nil,
		zaptest.NewLogger(t),
	)
	actor := access.Actor{UserID: user.ID, Partner: true}

	r := gin.New()
	r.POST("/import", func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	}, NewImportHandler(service, maxSize).Import)
	return r, actor
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "catalog.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportHandler_Import(t *testing.T) {
	t.Run("raw body", func(t *testing.T) {
		r, _ := newImportRouter(t, 1<<20)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(toolsDocument))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"shop":"Acme"`)
		assert.Contains(t, w.Body.String(), `"products_created":1`)
	})

	t.Run("multipart file", func(t *testing.T) {
		r, _ := newImportRouter(t, 1<<20)
		body, contentType := multipartBody(t, "file", toolsDocument)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/import", body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"categories":1`)
	})

	t.Run("multipart without file field", func(t *testing.T) {
		r, _ := newImportRouter(t, 1<<20)
		body, contentType := multipartBody(t, "document", toolsDocument)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/import", body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "file", decodeResponse(t, w).Error.Details[0].Field)
	})

	t.Run("empty document", func(t *testing.T) {
		r, _ := newImportRouter(t, 1<<20)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("  \n")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("document over the limit", func(t *testing.T) {
		r, _ := newImportRouter(t, 64)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(toolsDocument)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeResponse(t, w).Error.Code)
	})

	t.Run("malformed document", func(t *testing.T) {
		r, _ := newImportRouter(t, 1<<20)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(`{"shop":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, catalogimport.ErrCodeMalformedPayload, decodeResponse(t, w).Error.Code)
	})
}
