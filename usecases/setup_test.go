package usecases

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"realestate-server/db"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"
	"realestate-server/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         db.Database
	store      *storage.MemoryStore
	users      *UserUseCase
	leads      *LeadUseCase
	projects   *ProjectUseCase
	properties *PropertyUseCase
	media      *MediaUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	return newTestEnvWithStore(t, database, storage.NewMemoryStore(""))
}

func newTestEnvWithStore(t *testing.T, database db.Database, store storage.Store) *testEnv {
	t.Helper()
	userRepo := repositories.NewUserPgRepository(database)
	projectRepo := repositories.NewProjectPgRepository(database)
	propertyRepo := repositories.NewPropertyPgRepository(database)
	mediaRepo := repositories.NewPropertyMediaPgRepository(database)
	leadRepo := repositories.NewLeadPgRepository(database)

	properties := NewPropertyUseCase(propertyRepo, projectRepo, userRepo, store)
	env := &testEnv{
		db:         database,
		users:      NewUserUseCase(userRepo),
		leads:      NewLeadUseCase(leadRepo, propertyRepo, projectRepo, userRepo),
		projects:   NewProjectUseCase(projectRepo, propertyRepo),
		properties: properties,
		media:      NewMediaUseCase(database, properties, mediaRepo, store, DefaultMaxFiles),
	}
	if mem, ok := store.(*storage.MemoryStore); ok {
		env.store = mem
	}
	return env
}

func propertyRequest(title string) *dtos.PropertyRequest {
	return &dtos.PropertyRequest{
		Title:        title,
		PropertyType: "apartment",
		ListingType:  entities.ListingSale,
		Price:        decimal.RequireFromString("125000.50"),
		Bedrooms:     2,
		City:         "Pune",
	}
}

func (e *testEnv) createProperty(t *testing.T, title string) *entities.Property {
	t.Helper()
	p, err := e.properties.CreateProperty(propertyRequest(title))
	require.NoError(t, err)
	return p
}

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 64)...)
	pdfBytes  = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	textBytes = []byte("just some plain text, not an image")
)

func memFile(category, name string, data []byte) MediaFile {
	return MediaFile{
		Category: category,
		Filename: name,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// failingStore stores objects in memory until the failAt-th Put (1-based)
// and can be told to refuse deletes.
type failingStore struct {
	*storage.MemoryStore
	failAt      int
	puts        int
	failDeletes bool
}

func (s *failingStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (storage.Object, error) {
	s.puts++
	if s.puts == s.failAt {
		return storage.Object{}, errors.New("storage unavailable")
	}
	return s.MemoryStore.Put(ctx, key, r, size, contentType)
}

func (s *failingStore) Delete(ctx context.Context, key string) error {
	if s.failDeletes {
		return errors.New("delete refused")
	}
	return s.MemoryStore.Delete(ctx, key)
}
