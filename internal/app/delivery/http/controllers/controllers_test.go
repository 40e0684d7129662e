package controllers

import (
	"bytes"
	"context"
	"io"
	"medicalcv-service/internal/app/config"
	"medicalcv-service/internal/app/delivery/http/middlewares"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/backend"
	"medicalcv-service/internal/app/services/core/listing"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/app/services/shared/jwtmanager"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/requests"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySessions struct {
	mu         sync.Mutex
	tokens     map[string]string
	identities map[string]*models.Identity
}

func (m *memorySessions) Load(ctx context.Context, sessionID string) (string, *models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[sessionID], m.identities[sessionID], nil
}

func (m *memorySessions) Save(ctx context.Context, sessionID, token string, identity *models.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[sessionID] = token
	m.identities[sessionID] = identity
	return nil
}

func (m *memorySessions) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sessionID)
	delete(m.identities, sessionID)
	return nil
}

// byteCountingStorage drains uploads and remembers how much it received.
type byteCountingStorage struct {
	mu       sync.Mutex
	received []int64
}

func (s *byteCountingStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error) {
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.received = append(s.received, n)
	s.mu.Unlock()
	return objectName, nil
}

func (s *byteCountingStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	return "https://storage.example.com/" + objectName, nil
}

// fakeBackend plays the REST backend for one institution admin of INST1.
type fakeBackend struct {
	mu          sync.Mutex
	deleted     []string
	signOutHits int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	counted := func(total int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			write(w, `{"success":true,"data":[],"pagination":{"currentPage":1,"totalPages":1,"totalItems":`+
				jsonInt(total)+`,"itemsPerPage":1}}`)
		}
	}

	mux.HandleFunc(constvars.BackendPathSignIn, func(w http.ResponseWriter, r *http.Request) {
		var body requests.Login
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			write(w, `{"success":false,"message":"Invalid credentials"}`)
			return
		}
		write(w, `{"success":true,"data":{"token":"backend-token","user":{"_id":"u2","name":"Clinic Admin","email":"clinic@example.com","role":"admin_institutions","institutionId":"INST1"}}}`)
	})
	mux.HandleFunc(constvars.BackendPathSignOut, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.signOutHits++
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc(constvars.BackendPathPatients, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(constvars.QueryParamLimit) == "1" {
			counted(7)(w, r)
			return
		}
		write(w, `{"success":true,"data":[
			{"_id":"o1","patientId":"P-001","name":"Jane Doe","gender":"female","institutionIds":["INST1"]},
			{"_id":"o3","patientId":"P-003","name":"Mark Poe","gender":"male","institutionIds":["INST1"]}
		],"pagination":{"currentPage":1,"totalPages":1,"totalItems":2,"itemsPerPage":100}}`)
	})
	mux.HandleFunc(constvars.BackendPathPatients+"/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b.mu.Lock()
		b.deleted = append(b.deleted, r.URL.Path)
		b.mu.Unlock()
		write(w, `{"success":true}`)
	})
	mux.HandleFunc(constvars.BackendPathMedicalRecords+"/r1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var record models.MedicalRecord
			_ = json.NewDecoder(r.Body).Decode(&record)
			body, _ := json.Marshal(map[string]interface{}{"success": true, "data": record})
			write(w, string(body))
			return
		}
		write(w, `{"success":true,"data":{"_id":"r1","patientId":"P-001","institutionId":"INST1","visitInfo":{"type":"consultation","date":"2024-02-01"}}}`)
	})
	mux.HandleFunc(constvars.BackendPathDoctors, counted(3))
	mux.HandleFunc(constvars.BackendPathMedicalRecords, counted(11))
	return mux
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router  *chi.Mux
	backend *fakeBackend
	storage *byteCountingStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	fake := &fakeBackend{}
	objects := &byteCountingStorage{}
	upstream := httptest.NewServer(fake.handler())
	t.Cleanup(upstream.Close)

	client := backend.NewClient(upstream.URL, 5*time.Second, logger)
	registry := workspace.NewRegistry(&workspace.Dependencies{
		Client: client,
		Auth:   backend.NewAuthGateway(client),
		Sessions: &memorySessions{
			tokens:     map[string]string{},
			identities: map[string]*models.Identity{},
		},
		Storage:    objects,
		BucketName: "attachments",
		PageSize:   100,
		Log:        logger,
	}, time.Hour)

	internalConfig := &config.InternalConfig{
		App: config.App{RequestBodyLimitInMegabyte: 1},
		JWT: config.AppJWT{Secret: "controller-secret", ExpTimeInHour: 1},
	}
	jwtManager := jwtmanager.NewJWTManager(internalConfig, logger)
	mw := middlewares.NewMiddlewares(logger, internalConfig, jwtManager, registry)

	auth := NewAuthController(logger, registry, jwtManager, 5)
	dashboard := NewDashboardController(logger, 5)
	confirmation := NewConfirmationController(logger, 5)
	records := NewMedicalRecordController(logger, 5, 3)
	patients := NewResourceController[models.Patient, requests.Patient](logger, constvars.ResourcePatients,
		[]string{listing.CategoryGender, listing.CategoryBloodType}, 5,
		func(ws *workspace.Workspace) *listing.Controller[models.Patient] { return ws.Patients })

	router := chi.NewRouter()
	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.BodyLimit)
	router.Post("/auth/login", auth.Login)
	router.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Post("/auth/logout", auth.Logout)
		r.Get("/me", auth.Me)
		r.Get("/dashboard", dashboard.GetDashboard)
		r.Get("/patients", patients.List)
		r.Post("/patients/{id}/delete-intent", patients.DeleteIntent)
		r.Get("/confirmation", confirmation.GetState)
		r.Put("/confirmation", confirmation.Type)
		r.Post("/confirmation", confirmation.Confirm)
		r.Delete("/confirmation", confirmation.Cancel)
		r.Post("/medical-records/{id}/attachments", records.UploadAttachment)
	})
	return &testServer{router: router, backend: fake, storage: objects}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var out envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr.Code, out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	code, out := s.do(t, http.MethodPost, "/auth/login", "", requests.Login{Email: "clinic@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, code)

	var login struct {
		Token      string `json:"token"`
		Navigation []struct {
			Resource string `json:"resource"`
		} `json:"navigation"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestAuthController(t *testing.T) {
	t.Run("Wrong password", func(t *testing.T) {
		s := newTestServer(t)
		code, out := s.do(t, http.MethodPost, "/auth/login", "", requests.Login{Email: "clinic@example.com", Password: "wrong-one"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, out.Success)
	})

	t.Run("Login, profile and logout", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t)

		code, out := s.do(t, http.MethodGet, "/me", token, nil)
		require.Equal(t, http.StatusOK, code)
		var profile struct {
			User struct {
				Role          string `json:"role"`
				InstitutionID string `json:"institutionId"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(out.Data, &profile))
		assert.Equal(t, "admin_institutions", profile.User.Role)
		assert.Equal(t, "INST1", profile.User.InstitutionID)

		code, _ = s.do(t, http.MethodPost, "/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, s.backend.signOutHits)

		code, _ = s.do(t, http.MethodGet, "/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestResourceController_List(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	t.Run("Search narrows the displayed items", func(t *testing.T) {
		code, out := s.do(t, http.MethodGet, "/patients?search=jane", token, nil)
		require.Equal(t, http.StatusOK, code)

		var list struct {
			Items     []models.Patient `json:"items"`
			Total     int              `json:"total"`
			BaseTotal int              `json:"baseTotal"`
		}
		require.NoError(t, json.Unmarshal(out.Data, &list))
		require.Len(t, list.Items, 1)
		assert.Equal(t, "P-001", list.Items[0].PatientID)
		assert.Equal(t, 1, list.Total)
		assert.Equal(t, 2, list.BaseTotal)
	})

	t.Run("Category filter", func(t *testing.T) {
		code, out := s.do(t, http.MethodGet, "/patients?gender=male", token, nil)
		require.Equal(t, http.StatusOK, code)

		var list struct {
			Items []models.Patient `json:"items"`
		}
		require.NoError(t, json.Unmarshal(out.Data, &list))
		require.Len(t, list.Items, 1)
		assert.Equal(t, "P-003", list.Items[0].PatientID)
	})

	t.Run("Page slicing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/patients?page=2&pageSize=1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var out struct {
			Data struct {
				Items []models.Patient `json:"items"`
			} `json:"data"`
			Pagination struct {
				Total int `json:"total"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		require.Len(t, out.Data.Items, 1)
		assert.Equal(t, "P-003", out.Data.Items[0].PatientID)
		assert.Equal(t, 2, out.Pagination.Total)
	})

	t.Run("Oversized page numbers give an empty page", func(t *testing.T) {
		for _, query := range []string{
			"page=4611686018427387905&pageSize=2",
			"page=9223372036854775807&pageSize=9223372036854775807",
			"page=2&pageSize=9223372036854775807",
		} {
			req := httptest.NewRequest(http.MethodGet, "/patients?"+query, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			s.router.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code, query)

			var out struct {
				Data struct {
					Items []models.Patient `json:"items"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
			assert.Empty(t, out.Data.Items, query)
		}
	})
}

func TestDashboardController(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, out := s.do(t, http.MethodGet, "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)

	var stats struct {
		TotalPatients     int `json:"totalPatients"`
		TotalDoctors      int `json:"totalDoctors"`
		TotalRecords      int `json:"totalRecords"`
		TotalInstitutions int `json:"totalInstitutions"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &stats))
	assert.Equal(t, 7, stats.TotalPatients)
	assert.Equal(t, 3, stats.TotalDoctors)
	assert.Equal(t, 11, stats.TotalRecords)
	assert.Zero(t, stats.TotalInstitutions)
}

func TestConfirmationController_DeleteFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _ := s.do(t, http.MethodGet, "/patients", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, out := s.do(t, http.MethodPost, "/patients/P-001/delete-intent", token, nil)
	require.Equal(t, http.StatusOK, code)
	var state struct {
		State       string `json:"state"`
		DisplayName string `json:"displayName"`
		CanConfirm  bool   `json:"canConfirm"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &state))
	assert.Equal(t, "awaiting_typed_confirmation", state.State)
	assert.Equal(t, "Jane Doe", state.DisplayName)

	t.Run("Second intent is refused while one is pending", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/patients/P-003/delete-intent", token, nil)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("Wrong word does not delete", func(t *testing.T) {
		code, out := s.do(t, http.MethodPut, "/confirmation", token, requests.ConfirmationInput{Input: "delete"})
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(out.Data, &state))
		assert.False(t, state.CanConfirm)

		code, _ = s.do(t, http.MethodPost, "/confirmation", token, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Empty(t, s.backend.deleted)
	})

	t.Run("Typed word deletes once", func(t *testing.T) {
		code, out := s.do(t, http.MethodPut, "/confirmation", token, requests.ConfirmationInput{Input: "CONFIRM"})
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(out.Data, &state))
		assert.True(t, state.CanConfirm)

		code, out = s.do(t, http.MethodPost, "/confirmation", token, nil)
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(out.Data, &state))
		assert.Equal(t, "idle", state.State)
		assert.Equal(t, []string{constvars.BackendPathPatients + "/P-001"}, s.backend.deleted)

		code, _ = s.do(t, http.MethodPost, "/confirmation", token, nil)
		assert.NotEqual(t, http.StatusOK, code)
		assert.Len(t, s.backend.deleted, 1)
	})

	t.Run("Cancel returns to idle", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/patients/P-003/delete-intent", token, nil)
		require.Equal(t, http.StatusOK, code)

		code, out := s.do(t, http.MethodDelete, "/confirmation", token, nil)
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(out.Data, &state))
		assert.Equal(t, "idle", state.State)
		assert.Len(t, s.backend.deleted, 1)
	})
}

func TestPageBounds(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)

	cases := []struct {
		name                  string
		total, page, pageSize int
		wantStart, wantEnd    int
	}{
		{"First page", 5, 1, 2, 0, 2},
		{"Last partial page", 5, 3, 2, 4, 5},
		{"Past the end", 5, 4, 2, 5, 5},
		{"Empty collection", 0, 1, 10, 0, 0},
		{"Huge page", 5, maxInt/2 + 1, 2, 5, 5},
		{"Huge page size", 5, 1, maxInt, 0, 5},
		{"Huge page and page size", 5, maxInt, maxInt, 5, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := pageBounds(tc.total, tc.page, tc.pageSize)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func multipartUpload(t *testing.T, fileName string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(constvars.FormFieldFile, fileName)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField(constvars.FormFieldDescription, "scan"))
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestMedicalRecordController_UploadAttachment(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	upload := func(size int) int {
		body, contentType := multipartUpload(t, "scan.pdf", size)
		req := httptest.NewRequest(http.MethodPost, "/medical-records/r1/attachments", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("File above the JSON body limit but within the attachment limit", func(t *testing.T) {
		code := upload(2 << 20)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, []int64{2 << 20}, s.storage.received)
	})

	t.Run("File above the attachment limit", func(t *testing.T) {
		code := upload(5 << 20)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Len(t, s.storage.received, 1)
	})

	t.Run("JSON bodies keep the global limit", func(t *testing.T) {
		big := `{"input":"` + strings.Repeat("a", 2<<20) + `"}`
		req := httptest.NewRequest(http.MethodPut, "/confirmation", strings.NewReader(big))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
