package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"scholarspace-backend/errs"
	"scholarspace-backend/models"
	"scholarspace-backend/service"
	"scholarspace-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing the handler tests; they follow the same error
// contract as the Postgres repositories.

type memUsers struct {
	byEmail map[string]*models.User
}

var _ service.CredentialStore = (*memUsers)(nil)

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return errs.ErrDuplicateUser
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	cpy := *u
	m.byEmail[u.Email] = &cpy
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	cpy := *u
	return &cpy, nil
}

type memPapers struct {
	papers []*models.Paper
}

var _ service.PaperStore = (*memPapers)(nil)

func (m *memPapers) Create(_ context.Context, p *models.Paper) error {
	p.ID = uuid.New()
	p.UploadedAt = time.Now()
	cpy := *p
	m.papers = append(m.papers, &cpy)
	return nil
}

func (m *memPapers) find(id uuid.UUID) *models.Paper {
	for _, p := range m.papers {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *memPapers) GetByID(_ context.Context, id uuid.UUID) (*models.Paper, error) {
	if p := m.find(id); p != nil {
		cpy := *p
		return &cpy, nil
	}
	return nil, errs.ErrPaperNotFound
}

func (m *memPapers) List(ctx context.Context) ([]*models.Paper, error) {
	return m.Filter(ctx, models.PaperFilter{})
}

func (m *memPapers) Filter(_ context.Context, filter models.PaperFilter) ([]*models.Paper, error) {
	out := []*models.Paper{}
	for _, p := range m.papers {
		if filter.Year != nil && p.Year != *filter.Year {
			continue
		}
		if filter.Tag != "" {
			found := false
			for _, tag := range p.Tags {
				if tag == filter.Tag {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.Author != "" && !strings.Contains(strings.ToLower(p.Author), strings.ToLower(filter.Author)) {
			continue
		}
		cpy := *p
		out = append(out, &cpy)
	}
	return out, nil
}

func (m *memPapers) ToggleFavorite(_ context.Context, id uuid.UUID) (*models.Paper, error) {
	p := m.find(id)
	if p == nil {
		return nil, errs.ErrPaperNotFound
	}
	p.Favorite = !p.Favorite
	cpy := *p
	return &cpy, nil
}

func (m *memPapers) SetDocumentPath(_ context.Context, id uuid.UUID, path string) error {
	p := m.find(id)
	if p == nil {
		return errs.ErrPaperNotFound
	}
	p.DocumentPath = &path
	return nil
}

func (m *memPapers) CountAll(context.Context) (int, error) {
	return len(m.papers), nil
}

func (m *memPapers) CountByYear(_ context.Context, year int) (int, error) {
	n := 0
	for _, p := range m.papers {
		if p.Year == year {
			n++
		}
	}
	return n, nil
}

func (m *memPapers) TopTags(_ context.Context, limit int) ([]models.TagCount, error) {
	counts := map[string]int{}
	for _, p := range m.papers {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}
	tags := []models.TagCount{}
	for tag, count := range counts {
		tags = append(tags, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

type memDocs struct {
	files map[string][]byte
}

var _ storage.Storage = (*memDocs)(nil)

func (m *memDocs) Save(_ context.Context, paperID uuid.UUID, filename string, data io.Reader) (string, error) {
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	path := paperID.String() + "/" + filename
	m.files[path] = b
	return path, nil
}

func (m *memDocs) Open(_ context.Context, storagePath string) (io.ReadCloser, error) {
	b, ok := m.files[storagePath]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", storagePath)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memDocs) Delete(_ context.Context, storagePath string) error {
	delete(m.files, storagePath)
	return nil
}

// setupRouter wires the full route tree exactly as cmd/server does, backed
// by in-memory stores.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(
		service.WithCredentialStore(&memUsers{byEmail: map[string]*models.User{}}),
		service.WithSigningKey([]byte("test-signing-key")),
		service.WithTokenTTL(time.Hour),
	)
	paperService := service.NewPaperService(
		service.WithPaperStore(&memPapers{}),
		service.WithDocumentStorage(&memDocs{}),
	)

	authHandler := NewAuthHandler(authService)
	paperHandler := NewPaperHandler(paperService)
	documentHandler := NewDocumentHandler(paperService)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		papers := api.Group("/papers")
		{
			papers.POST("/upload", paperHandler.UploadPaper)
			papers.GET("", paperHandler.ListPapers)
			papers.GET("/filter", paperHandler.FilterPapers)
			papers.GET("/analytics/stats", paperHandler.GetStats)
			papers.GET("/:id", paperHandler.GetPaper)
			papers.POST("/:id/favorite", paperHandler.ToggleFavorite)

			documents := papers.Group("", RequireAuth(authService))
			{
				documents.POST("/:id/document", documentHandler.AttachDocument)
				documents.GET("/:id/document", documentHandler.GetDocument)
			}
		}
	}

	return r
}

// envelope mirrors the JSON response shape of all handlers
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func doMultipart(t *testing.T, r *gin.Engine, path, filename, content, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
