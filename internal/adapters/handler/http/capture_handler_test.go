package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adapterHTTP "github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
)

type MockTaskRepo struct {
	store map[string]*domain.Task
}

func NewMockTaskRepo() *MockTaskRepo {
	return &MockTaskRepo{store: make(map[string]*domain.Task)}
}

func (m *MockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	clone := *t
	m.store[t.ID] = &clone
	return nil
}

func (m *MockTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (m *MockTaskRepo) ListByUserID(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	var list []*domain.Task
	for _, t := range m.store {
		if t.UserID == userID {
			clone := *t
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	clone := *t
	m.store[t.ID] = &clone
	return nil
}

func (m *MockTaskRepo) Delete(ctx context.Context, id string) error {
	delete(m.store, id)
	return nil
}

func (m *MockTaskRepo) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return 0, nil
}

type MockNoteRepo struct {
	store map[string]*domain.Note
}

func NewMockNoteRepo() *MockNoteRepo {
	return &MockNoteRepo{store: make(map[string]*domain.Note)}
}

func (m *MockNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	clone := *n
	m.store[n.ID] = &clone
	return nil
}

func (m *MockNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	n, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (m *MockNoteRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Note, error) {
	var list []*domain.Note
	for _, n := range m.store {
		if n.UserID == userID {
			clone := *n
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockNoteRepo) Update(ctx context.Context, n *domain.Note) error {
	clone := *n
	m.store[n.ID] = &clone
	return nil
}

func (m *MockNoteRepo) Delete(ctx context.Context, id string) error {
	delete(m.store, id)
	return nil
}

type MockReadingRepo struct {
	store map[string]*domain.ReadingItem
}

func NewMockReadingRepo() *MockReadingRepo {
	return &MockReadingRepo{store: make(map[string]*domain.ReadingItem)}
}

func (m *MockReadingRepo) Create(ctx context.Context, r *domain.ReadingItem) error {
	clone := *r
	m.store[r.ID] = &clone
	return nil
}

func (m *MockReadingRepo) GetByID(ctx context.Context, id string) (*domain.ReadingItem, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrReadingNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *MockReadingRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.ReadingItem, error) {
	var list []*domain.ReadingItem
	for _, r := range m.store {
		if r.UserID == userID {
			clone := *r
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockReadingRepo) Update(ctx context.Context, r *domain.ReadingItem) error {
	clone := *r
	m.store[r.ID] = &clone
	return nil
}

func (m *MockReadingRepo) Delete(ctx context.Context, id string) error {
	delete(m.store, id)
	return nil
}

type MockProjectRepo struct {
	store map[string]*domain.Project
}

func NewMockProjectRepo() *MockProjectRepo {
	return &MockProjectRepo{store: make(map[string]*domain.Project)}
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockProjectRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Project, error) {
	var list []*domain.Project
	for _, p := range m.store {
		if p.UserID == userID {
			clone := *p
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *MockProjectRepo) Delete(ctx context.Context, id string) error {
	delete(m.store, id)
	return nil
}

func setupCaptureRouter() (*gin.Engine, *MockTaskRepo, *MockNoteRepo, *MockReadingRepo, *MockProjectRepo) {
	gin.SetMode(gin.TestMode)

	tasks := NewMockTaskRepo()
	notes := NewMockNoteRepo()
	reading := NewMockReadingRepo()
	projects := NewMockProjectRepo()

	svc := services.NewCaptureService(tasks, notes, reading, projects)
	handler := adapterHTTP.NewCaptureHandler(svc)

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(testAuth())
	handler.RegisterRoutes(group)
	return r, tasks, notes, reading, projects
}

func TestCaptureSubmit(t *testing.T) {
	t.Run("Success: 201 task from [] prefix", func(t *testing.T) {
		router, tasks, notes, _, _ := setupCaptureRouter()

		body := `{"content": "[] Buy milk"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"task"`)
		assert.Contains(t, w.Body.String(), `"content":"Buy milk"`)
		assert.Len(t, tasks.store, 1)
		assert.Empty(t, notes.store)
	})

	t.Run("Success: 201 note from # prefix", func(t *testing.T) {
		router, _, notes, _, _ := setupCaptureRouter()

		body := `{"content": "# An idea"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"note"`)
		assert.Len(t, notes.store, 1)
	})

	t.Run("Success: 201 reading item from * prefix", func(t *testing.T) {
		router, _, _, reading, _ := setupCaptureRouter()

		body := `{"content": "* Dune"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"reading"`)
		assert.Len(t, reading.store, 1)
	})

	t.Run("Success: 201 project from project: prefix", func(t *testing.T) {
		router, _, _, _, projects := setupCaptureRouter()

		body := `{"content": "project: Garden"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"project"`)
		assert.Len(t, projects.store, 1)
	})

	t.Run("Success: 201 generic capture lands as inbox task", func(t *testing.T) {
		router, tasks, _, _, _ := setupCaptureRouter()

		body := `{"content": "call the dentist"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"none"`)
		assert.Len(t, tasks.store, 1)
	})

	t.Run("Fail: 400 on prefix-only content", func(t *testing.T) {
		router, tasks, _, _, _ := setupCaptureRouter()

		body := `{"content": "[]   "}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, tasks.store)
	})

	t.Run("Fail: 400 on missing content field", func(t *testing.T) {
		router, _, _, _, _ := setupCaptureRouter()

		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(`{}`))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 401 without user", func(t *testing.T) {
		router, _, _, _, _ := setupCaptureRouter()

		body := `{"content": "[] Task"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture", bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCapturePreview(t *testing.T) {
	t.Run("Success: 200 OK, nothing persisted", func(t *testing.T) {
		router, tasks, notes, reading, projects := setupCaptureRouter()

		body := `{"content": "# just a preview"}`
		req, _ := http.NewRequest("POST", "/api/v1/capture/preview", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"note"`)
		assert.Contains(t, w.Body.String(), `"content":"just a preview"`)

		assert.Empty(t, tasks.store)
		assert.Empty(t, notes.store)
		assert.Empty(t, reading.store)
		assert.Empty(t, projects.store)
	})
}
