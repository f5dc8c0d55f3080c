package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"realestate-server/confs"
	"realestate-server/db"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"
	"realestate-server/storage"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	agentEmail    = "agent@example.com"
	adminPassword = "correct-horse"
)

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 64)...)
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *storage.MemoryStore
}

func testConfig(cmsURL string) *confs.Config {
	return &confs.Config{
		Port:    "0",
		GinMode: gin.TestMode,
		Session: confs.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "re_session",
			TTL:        time.Hour,
		},
		Upload: confs.UploadConfig{
			MaxFiles:  usecases.DefaultMaxFiles,
			MaxMemory: 1 << 20,
			MaxBody:   64 << 10,
		},
		CMS: confs.CMSConfig{
			BaseURL:    cmsURL,
			Timeout:    2 * time.Second,
			CacheTTL:   time.Minute,
			ImageField: "images",
		},
	}
}

func newTestServer(t *testing.T, cmsURL string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)

	users := usecases.NewUserUseCase(repositories.NewUserPgRepository(database))
	for email, role := range map[string]string{adminEmail: entities.RoleAdmin, agentEmail: entities.RoleAgent} {
		_, err := users.CreateUser(&dtos.CreateUserRequest{
			Name:     role,
			Email:    email,
			Password: adminPassword,
			Role:     role,
		})
		require.NoError(t, err)
	}

	store := storage.NewMemoryStore("/media")
	srv, err := NewServer(testConfig(cmsURL), database, store, nil)
	require.NoError(t, err)

	return &testServer{t: t, engine: srv.Engine(), store: store}
}

func (ts *testServer) do(method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) json(method, path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(ts.t, err)
		body = bytes.NewReader(raw)
	}
	return ts.do(method, path, body, "application/json", cookie)
}

func (ts *testServer) login(email string) *http.Cookie {
	rec := ts.json(http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": adminPassword}, nil)
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "re_session" {
			return c
		}
	}
	ts.t.Fatal("login did not set a session cookie")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	d, ok := decode(t, rec)["data"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return d
}

func propertyPayload(title string) gin.H {
	return gin.H{
		"title":         title,
		"property_type": "villa",
		"listing_type":  "sale",
		"price":         "250000",
		"bedrooms":      4,
		"city":          "Goa",
		"amenities":     []string{"pool", "garden"},
	}
}

func (ts *testServer) createProperty(cookie *http.Cookie, payload gin.H) map[string]any {
	rec := ts.json(http.MethodPost, "/api/v1/properties", payload, cookie)
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return data(ts.t, rec)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(http.MethodGet, "/health", nil, "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "not_configured", body["cms"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, "")
	ts.do(http.MethodGet, "/health", nil, "", nil)

	rec := ts.do(http.MethodGet, "/metrics", nil, "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "realestate_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t, "")

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.json(http.MethodPost, "/api/v1/auth/login", gin.H{"email": adminEmail, "password": "nope-nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_credentials", decode(t, rec)["code"])
	})

	t.Run("unknown email gets the same answer", func(t *testing.T) {
		rec := ts.json(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ghost@example.com", "password": "nope-nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_credentials", decode(t, rec)["code"])
	})

	t.Run("session cookie round trip", func(t *testing.T) {
		cookie := ts.login(adminEmail)
		assert.True(t, cookie.HttpOnly)

		rec := ts.do(http.MethodGet, "/api/v1/auth/me", nil, "", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		me := data(t, rec)
		assert.Equal(t, adminEmail, me["email"])
		assert.IsType(t, "", me["id"])
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("bearer header", func(t *testing.T) {
		cookie := ts.login(agentEmail)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+cookie.Value)
		rec := httptest.NewRecorder()
		ts.engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("me without session", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/v1/auth/me", nil, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/v1/auth/me", nil, "", &http.Cookie{Name: "re_session", Value: "not.a.jwt"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logout expires the cookie", func(t *testing.T) {
		rec := ts.json(http.MethodPost, "/api/v1/auth/logout", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestUsersAreAdminOnly(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(http.MethodGet, "/api/v1/users", nil, "", ts.login(agentEmail))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.login(adminEmail)
	rec = ts.do(http.MethodGet, "/api/v1/users", nil, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["count"])

	rec = ts.json(http.MethodPost, "/api/v1/users", gin.H{
		"name": "Dup", "email": strings.ToUpper(agentEmail), "password": "longenough", "role": "agent",
	}, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.json(http.MethodPost, "/api/v1/users", gin.H{"name": "Bad", "email": "x@example.com", "password": "short", "role": "agent"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec)["code"])
}

func TestPropertyLifecycle(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)

	rec := ts.json(http.MethodPost, "/api/v1/properties", propertyPayload("Sea View Villa"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	created := ts.createProperty(agent, propertyPayload("Sea View Villa"))
	id, ok := created["id"].(string)
	require.True(t, ok, "ids are serialized as strings")
	assert.Equal(t, "250000", created["price"])
	assert.Equal(t, "sea-view-villa", created["slug"])

	rec = ts.do(http.MethodGet, "/api/v1/properties/"+id, nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sea View Villa", data(t, rec)["title"])

	rec = ts.do(http.MethodGet, "/api/v1/properties/abc", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/properties/999999", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode(t, rec)["code"])

	dup := propertyPayload("Another")
	dup["slug"] = "sea-view-villa"
	rec = ts.json(http.MethodPost, "/api/v1/properties", dup, agent)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.json(http.MethodPut, "/api/v1/properties/"+id, gin.H{"price": "260000.75"}, agent)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "260000.75", data(t, rec)["price"])

	rec = ts.json(http.MethodPost, "/api/v1/properties", gin.H{"title": "x"}, agent)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/v1/properties/"+id, nil, "", agent)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/properties/"+id, nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftsHiddenFromAnonymousCallers(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)

	ts.createProperty(agent, propertyPayload("Public Flat"))
	draftPayload := propertyPayload("Secret Flat")
	draftPayload["status"] = entities.StatusDraft
	draft := ts.createProperty(agent, draftPayload)

	rec := ts.do(http.MethodGet, "/api/v1/properties", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = ts.do(http.MethodGet, "/api/v1/properties?status=draft", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["total"])

	rec = ts.do(http.MethodGet, "/api/v1/properties", nil, "", agent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["total"])

	rec = ts.do(http.MethodGet, "/api/v1/properties/"+draft["id"].(string), nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/properties/"+draft["id"].(string), nil, "", agent)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/properties/secret-flat", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body, contentType := multipartBody(t, nil, part{"cover", "front.jpg", jpegBytes})
	rec = ts.do(http.MethodPost, "/api/v1/properties/"+draft["id"].(string)+"/media", body, contentType, agent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/v1/properties/"+draft["id"].(string)+"/media", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "object_key")

	rec = ts.do(http.MethodGet, "/api/v1/properties/"+draft["id"].(string)+"/media", nil, "", agent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestPropertyListFilters(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)

	ts.createProperty(agent, propertyPayload("Villa One"))
	cheap := propertyPayload("Studio")
	cheap["price"] = "90000"
	cheap["bedrooms"] = 1
	ts.createProperty(agent, cheap)

	rec := ts.do(http.MethodGet, "/api/v1/properties?max_price=100000", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = ts.do(http.MethodGet, "/api/v1/properties?min_bedrooms=2&page_size=1", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 1, body["page_size"])

	for _, query := range []string{"page=0", "page_size=500", "min_price=cheap", "featured=maybe", "min_price=10&max_price=5"} {
		rec = ts.do(http.MethodGet, "/api/v1/properties?"+query, nil, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

type part struct {
	field, filename string
	data            []byte
}

func multipartBody(t *testing.T, values map[string]string, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestMediaUpload(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)
	id := ts.createProperty(agent, propertyPayload("Lake House"))["id"].(string)

	body, contentType := multipartBody(t, nil,
		part{"cover", "front.jpg", jpegBytes},
		part{"gallery", "kitchen.png", pngBytes},
	)
	rec := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/media", body, contentType, agent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 2, decode(t, rec)["count"])
	require.Len(t, ts.store.Keys(), 2)

	key := ts.store.Keys()[0]
	rec = ts.do(http.MethodGet, "/media/"+key, nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = ts.do(http.MethodGet, "/api/v1/properties/"+id+"/media", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["count"])

	t.Run("second cover conflicts", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, part{"cover", "again.jpg", jpegBytes})
		rec := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/media", body, contentType, agent)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "cover_exists", decode(t, rec)["code"])
		assert.Len(t, ts.store.Keys(), 2)
	})

	t.Run("unknown category", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, part{"selfie", "me.jpg", jpegBytes})
		rec := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/media", body, contentType, agent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_media_category", decode(t, rec)["code"])
	})

	t.Run("oversized request body", func(t *testing.T) {
		big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0x00}, 128<<10)...)
		body, contentType := multipartBody(t, nil, part{"gallery", "huge.png", big})
		rec := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/media", body, contentType, agent)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "file_too_large", decode(t, rec)["code"])
		assert.Len(t, ts.store.Keys(), 2)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := ts.json(http.MethodPost, "/api/v1/properties/"+id+"/media", gin.H{}, agent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("anonymous upload", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, part{"gallery", "a.png", pngBytes})
		rec := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/media", body, contentType, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreatePropertyWithMedia(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)

	listing, err := json.Marshal(propertyPayload("Hill Cottage"))
	require.NoError(t, err)

	body, contentType := multipartBody(t, map[string]string{"property": string(listing)},
		part{"cover", "front.jpg", jpegBytes},
		part{"gallery", "porch.png", pngBytes},
	)
	rec := ts.do(http.MethodPost, "/api/v1/properties/with-media", body, contentType, agent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := data(t, rec)
	assert.Equal(t, "hill-cottage", created["slug"])
	assert.Len(t, created["media"], 2)

	t.Run("rejected file leaves nothing behind", func(t *testing.T) {
		listing, err := json.Marshal(propertyPayload("Valley Cottage"))
		require.NoError(t, err)
		body, contentType := multipartBody(t, map[string]string{"property": string(listing)},
			part{"gallery", "ok.png", pngBytes},
			part{"brochure", "fake.pdf", pngBytes},
		)
		rec := ts.do(http.MethodPost, "/api/v1/properties/with-media", body, contentType, agent)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Len(t, ts.store.Keys(), 2)

		rec = ts.do(http.MethodGet, "/api/v1/properties?q=Valley", nil, "", agent)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 0, decode(t, rec)["total"])
	})

	t.Run("missing listing field", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, part{"cover", "front.jpg", jpegBytes})
		rec := ts.do(http.MethodPost, "/api/v1/properties/with-media", body, contentType, agent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid listing json", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"property": `{"title": 5}`}, part{"cover", "front.jpg", jpegBytes})
		rec := ts.do(http.MethodPost, "/api/v1/properties/with-media", body, contentType, agent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLeads(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.json(http.MethodPost, "/api/v1/leads", gin.H{"name": "Priya", "email": "priya@example.com", "message": "Call me"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lead := data(t, rec)
	assert.Equal(t, "new", lead["status"])
	assert.Equal(t, "website", lead["source"])

	rec = ts.json(http.MethodPost, "/api/v1/leads", gin.H{"name": "Nobody"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.json(http.MethodPost, "/api/v1/leads", gin.H{"name": "Lost", "phone": "+91 98765 43210", "property_id": 4242}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/leads", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	agent := ts.login(agentEmail)
	rec = ts.do(http.MethodGet, "/api/v1/leads?status=new", nil, "", agent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = ts.json(http.MethodPut, "/api/v1/leads/"+lead["id"].(string), gin.H{"status": "contacted"}, agent)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "contacted", data(t, rec)["status"])
}

func TestProjectsAndPages(t *testing.T) {
	ts := newTestServer(t, "")
	agent := ts.login(agentEmail)

	rec := ts.json(http.MethodPost, "/api/v1/projects", gin.H{"name": "Palm Grove", "developer": "Acme", "city": "Goa"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.json(http.MethodPost, "/api/v1/projects", gin.H{"name": "Palm Grove", "developer": "Acme", "city": "Goa"}, agent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := data(t, rec)
	assert.Equal(t, "palm-grove", project["slug"])

	rec = ts.json(http.MethodPost, "/api/v1/projects", gin.H{"name": "Palm Grove"}, agent)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEqual(t, "palm-grove", data(t, rec)["slug"])

	rec = ts.json(http.MethodPost, "/api/v1/projects", gin.H{"name": "Palm Grove II", "slug": "palm-grove"}, agent)
	assert.Equal(t, http.StatusConflict, rec.Code)

	unit := propertyPayload("Palm Grove Villa 7")
	unit["project_id"] = json.Number(project["id"].(string))
	ts.createProperty(agent, unit)

	rec = ts.do(http.MethodGet, "/api/v1/projects/"+project["id"].(string), nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, data(t, rec)["properties"], 1)

	t.Run("property page", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/properties/palm-grove-villa-7", nil, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Body.String(), "Palm Grove Villa 7")
	})

	t.Run("project page", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/projects/palm-grove", nil, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Palm Grove Villa 7")
	})

	t.Run("missing page", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/projects/nowhere", nil, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})
}

func TestCMSProxy(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ts := newTestServer(t, "")
		rec := ts.do(http.MethodGet, "/api/v1/cms/articles", nil, "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "cms_not_configured", decode(t, rec)["code"])
	})

	t.Run("relays upstream", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/articles" || r.URL.Query().Get("locale") != "en" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[{"id":1}]}`))
		}))
		defer upstream.Close()

		ts := newTestServer(t, upstream.URL)
		rec := ts.do(http.MethodGet, "/api/v1/cms/articles?locale=en", nil, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":1}]}`, rec.Body.String())

		rec = ts.do(http.MethodGet, "/api/v1/cms/missing", nil, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream down", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close()

		ts := newTestServer(t, upstream.URL)
		rec := ts.do(http.MethodGet, "/api/v1/cms/articles", nil, "", nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "cms_unavailable", decode(t, rec)["code"])
	})
}

func TestCacheEndpointsAreAdminOnly(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(http.MethodGet, "/api/v1/cache/stats", nil, "", ts.login(agentEmail))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.login(adminEmail)
	rec = ts.do(http.MethodGet, "/api/v1/cache/stats", nil, "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodPost, "/api/v1/cache/purge", nil, "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	ts := newTestServer(t, "")

	var last int
	for i := 0; i < loginBurst+1; i++ {
		rec := ts.json(http.MethodPost, "/api/v1/auth/login", gin.H{"email": adminEmail, "password": "wrong-one"}, nil)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
