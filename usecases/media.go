package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"realestate-server/apperr"
	"realestate-server/db"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/logger"
	"realestate-server/metrics"
	"realestate-server/repositories"
	"realestate-server/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	mib             = 1 << 20
	DefaultMaxFiles = 40
)

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp"}
	videoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
)

// CategoryRule limits what one media category accepts.
type CategoryRule struct {
	Name     string
	MaxFiles int
	MaxBytes int64
	Types    []string
}

// MediaCategories lists the accepted categories in validation and upload order.
var MediaCategories = []CategoryRule{
	{Name: entities.MediaCover, MaxFiles: 1, MaxBytes: 10 * mib, Types: imageTypes},
	{Name: entities.MediaGallery, MaxFiles: 30, MaxBytes: 10 * mib, Types: imageTypes},
	{Name: entities.MediaFloorPlan, MaxFiles: 10, MaxBytes: 20 * mib, Types: append(append([]string{}, imageTypes...), "application/pdf")},
	{Name: entities.MediaVideo, MaxFiles: 3, MaxBytes: 200 * mib, Types: videoTypes},
	{Name: entities.MediaBrochure, MaxFiles: 2, MaxBytes: 25 * mib, Types: []string{"application/pdf"}},
}

// IsMediaCategory reports whether name is one of MediaCategories.
func IsMediaCategory(name string) bool {
	_, ok := ruleFor(name)
	return ok
}

func ruleFor(name string) (CategoryRule, bool) {
	for _, rule := range MediaCategories {
		if rule.Name == name {
			return rule, true
		}
	}
	return CategoryRule{}, false
}

// MediaFile is one uploaded file as received from a multipart form.
type MediaFile struct {
	Category string
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type preparedFile struct {
	MediaFile
	contentType string
	ext         string
}

type uploadedFile struct {
	preparedFile
	object storage.Object
}

type MediaUseCase struct {
	DB         db.Database
	Properties *PropertyUseCase
	MediaRepo  repositories.PropertyMediaRepository
	Store      storage.Store
	MaxFiles   int
}

func NewMediaUseCase(database db.Database, properties *PropertyUseCase, mediaRepo repositories.PropertyMediaRepository, store storage.Store, maxFiles int) *MediaUseCase {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &MediaUseCase{
		DB:         database,
		Properties: properties,
		MediaRepo:  mediaRepo,
		Store:      store,
		MaxFiles:   maxFiles,
	}
}

// CreatePropertyWithMedia validates the listing and its files, uploads the
// files, then inserts the property and media rows in one transaction. Any
// failure after the first upload removes the uploaded objects again.
func (uc *MediaUseCase) CreatePropertyWithMedia(ctx context.Context, req *dtos.PropertyRequest, files []MediaFile) (*entities.Property, error) {
	property, err := uc.Properties.PrepareProperty(req)
	if err != nil {
		return nil, err
	}
	prepared, err := uc.validate(files, 0)
	if err != nil {
		return nil, err
	}

	uploaded, err := uc.upload(ctx, "properties/"+uuid.NewString(), prepared)
	if err != nil {
		return nil, err
	}

	err = uc.DB.Transaction(func(tx db.Database) error {
		if err := repositories.NewPropertyPgRepository(tx).Create(property); err != nil {
			return err
		}
		media := mediaRows(property.ID, uploaded, 0)
		if err := repositories.NewPropertyMediaPgRepository(tx).CreateBatch(media); err != nil {
			return err
		}
		property.Media = media
		return nil
	})
	if err != nil {
		uc.rollback(ctx, uploaded, err)
		return nil, persistError(err, "slug already in use")
	}

	logger.Log.WithFields(logrus.Fields{
		"property_id": property.ID,
		"files":       len(uploaded),
	}).Info("property created with media")
	return property, nil
}

// UploadMediaBatch attaches files to an existing property. Sort order
// continues after the current highest value.
func (uc *MediaUseCase) UploadMediaBatch(ctx context.Context, propertyID int64, files []MediaFile) ([]entities.PropertyMedia, error) {
	property, err := uc.Properties.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	prepared, err := uc.validate(files, property.ID)
	if err != nil {
		return nil, err
	}

	last, err := uc.MediaRepo.MaxSortOrder(property.ID)
	if err != nil {
		return nil, apperr.Internal("failed to read media order", err)
	}

	uploaded, err := uc.upload(ctx, fmt.Sprintf("properties/%d", property.ID), prepared)
	if err != nil {
		return nil, err
	}

	media := mediaRows(property.ID, uploaded, last+1)
	err = uc.DB.Transaction(func(tx db.Database) error {
		return repositories.NewPropertyMediaPgRepository(tx).CreateBatch(media)
	})
	if err != nil {
		uc.rollback(ctx, uploaded, err)
		return nil, persistError(err, "media object already recorded")
	}

	logger.Log.WithFields(logrus.Fields{
		"property_id": property.ID,
		"files":       len(media),
	}).Info("media batch uploaded")
	return media, nil
}

// ListMedia returns a property's media ordered by sort order. A draft
// listing only shows its media when includeDraft is set.
func (uc *MediaUseCase) ListMedia(propertyID int64, includeDraft bool) ([]entities.PropertyMedia, error) {
	property, err := uc.Properties.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	if property.Status == entities.StatusDraft && !includeDraft {
		return nil, apperr.NotFound("property not found")
	}
	media, err := uc.MediaRepo.GetByPropertyID(propertyID)
	if err != nil {
		return nil, apperr.Internal("failed to list media", err)
	}
	return media, nil
}

// DeleteMedia removes the row, then the stored object on a best-effort basis.
func (uc *MediaUseCase) DeleteMedia(ctx context.Context, propertyID, mediaID int64) error {
	if err := requireID(mediaID, "media"); err != nil {
		return err
	}
	media, err := uc.MediaRepo.GetByID(mediaID)
	if err != nil {
		return lookupError(err, "media")
	}
	if media.PropertyID != propertyID {
		return apperr.NotFound("media not found")
	}
	if err := uc.MediaRepo.Delete(media.ID); err != nil {
		return apperr.Internal("failed to delete media", err)
	}
	removeObjects(ctx, uc.Store, []string{media.ObjectKey}, "media delete")
	return nil
}

// validate checks a batch before anything is uploaded and returns the files
// in category order. existing is the property's current media, nil when the
// property is new.
// validate checks a batch against the category table. propertyID is zero
// for a listing that does not exist yet.
func (uc *MediaUseCase) validate(files []MediaFile, propertyID int64) ([]preparedFile, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("at least one file is required")
	}
	if len(files) > uc.MaxFiles {
		return nil, apperr.New(http.StatusBadRequest, apperr.CodeTooManyFiles,
			fmt.Sprintf("at most %d files per request", uc.MaxFiles))
	}

	byCategory := make(map[string][]MediaFile, len(MediaCategories))
	for _, f := range files {
		if !IsMediaCategory(f.Category) {
			return nil, apperr.New(http.StatusBadRequest, apperr.CodeInvalidMediaCategory,
				fmt.Sprintf("unknown media category %q", f.Category))
		}
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	prepared := make([]preparedFile, 0, len(files))
	for _, rule := range MediaCategories {
		group := byCategory[rule.Name]
		if len(group) == 0 {
			continue
		}
		if len(group) > rule.MaxFiles {
			return nil, apperr.New(http.StatusBadRequest, apperr.CodeTooManyFiles,
				fmt.Sprintf("%s accepts at most %d files", rule.Name, rule.MaxFiles))
		}
		for _, f := range group {
			p, err := checkFile(rule, f)
			if err != nil {
				return nil, err
			}
			prepared = append(prepared, p)
		}
	}

	if len(byCategory[entities.MediaCover]) > 0 && propertyID != 0 {
		covers, err := uc.MediaRepo.CountByCategory(propertyID, entities.MediaCover)
		if err != nil {
			return nil, apperr.Internal("failed to read existing media", err)
		}
		if covers > 0 {
			return nil, apperr.New(http.StatusConflict, apperr.CodeCoverExists,
				"property already has a cover image")
		}
	}
	return prepared, nil
}

func checkFile(rule CategoryRule, f MediaFile) (preparedFile, error) {
	if f.Size <= 0 {
		return preparedFile{}, apperr.New(http.StatusBadRequest, apperr.CodeFileTooLarge,
			fmt.Sprintf("%s is empty", f.Filename))
	}
	if f.Size > rule.MaxBytes {
		return preparedFile{}, apperr.New(http.StatusRequestEntityTooLarge, apperr.CodeFileTooLarge,
			fmt.Sprintf("%s exceeds the %d MiB limit for %s", f.Filename, rule.MaxBytes/mib, rule.Name))
	}

	mtype, err := sniff(f)
	if err != nil {
		return preparedFile{}, apperr.BadRequest(fmt.Sprintf("could not read %s", f.Filename))
	}
	for _, allowed := range rule.Types {
		if mtype.Is(allowed) {
			ext := mtype.Extension()
			if ext == "" {
				ext = strings.ToLower(path.Ext(f.Filename))
			}
			return preparedFile{MediaFile: f, contentType: allowed, ext: ext}, nil
		}
	}
	return preparedFile{}, apperr.New(http.StatusUnsupportedMediaType, apperr.CodeUnsupportedMedia,
		fmt.Sprintf("%s has type %s, which %s does not accept", f.Filename, mtype.String(), rule.Name))
}

func sniff(f MediaFile) (*mimetype.MIME, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return mimetype.DetectReader(rc)
}

// upload stores files one at a time. On failure it removes what it already
// stored and reports the file that failed.
func (uc *MediaUseCase) upload(ctx context.Context, prefix string, files []preparedFile) ([]uploadedFile, error) {
	uploaded := make([]uploadedFile, 0, len(files))
	for _, f := range files {
		key := fmt.Sprintf("%s/%s/%s%s", prefix, f.Category, uuid.NewString(), f.ext)
		obj, err := uc.put(ctx, key, f)
		if err != nil {
			metrics.MediaUploads.WithLabelValues(f.Category, "failed").Inc()
			uc.rollback(ctx, uploaded, err)
			return nil, apperr.Upstream(apperr.CodeMediaUploadFailed,
				fmt.Sprintf("failed to upload %s", f.Filename), err)
		}
		metrics.MediaUploads.WithLabelValues(f.Category, "ok").Inc()
		uploaded = append(uploaded, uploadedFile{preparedFile: f, object: obj})
	}
	return uploaded, nil
}

func (uc *MediaUseCase) put(ctx context.Context, key string, f preparedFile) (storage.Object, error) {
	rc, err := f.Open()
	if err != nil {
		return storage.Object{}, err
	}
	defer rc.Close()
	return uc.Store.Put(ctx, key, rc, f.Size, f.contentType)
}

func (uc *MediaUseCase) rollback(ctx context.Context, uploaded []uploadedFile, cause error) {
	if len(uploaded) == 0 {
		return
	}
	keys := make([]string, len(uploaded))
	for i, u := range uploaded {
		keys[i] = u.object.Key
	}
	logger.Log.WithError(cause).Warnf("rolling back %d uploaded objects", len(keys))
	removeObjects(ctx, uc.Store, keys, "media rollback")
}

func mediaRows(propertyID int64, uploaded []uploadedFile, firstOrder int) []entities.PropertyMedia {
	rows := make([]entities.PropertyMedia, len(uploaded))
	for i, u := range uploaded {
		rows[i] = entities.PropertyMedia{
			PropertyID:   propertyID,
			Category:     u.Category,
			ObjectKey:    u.object.Key,
			URL:          u.object.URL,
			ContentType:  u.contentType,
			SizeBytes:    u.object.Size,
			SortOrder:    firstOrder + i,
			OriginalName: path.Base(u.Filename),
		}
	}
	return rows
}

// persistError maps a failed media transaction. conflict is the message
// for a unique-key clash, which differs per operation.
func persistError(err error, conflict string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflict)
	}
	return apperr.Wrap(http.StatusInternalServerError, apperr.CodeMediaPersistFailed,
		"failed to save media", err)
}
