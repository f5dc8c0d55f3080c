package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode"

	"realestate-server/apperr"
	"realestate-server/logger"
	"realestate-server/metrics"
	"realestate-server/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	cleanupTimeout  = 30 * time.Second
	maxSlugAttempts = 5
)

// lookupError turns a repository error into a 404 or a 500.
func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return apperr.Internal("failed to load "+what, err)
}

// writeError maps duplicate-key violations to 409 and everything else to 500.
func writeError(err error, conflictMsg, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflictMsg)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Validation("referenced record does not exist")
	}
	return apperr.Internal("failed to "+action, err)
}

func requireID(id int64, what string) error {
	if id <= 0 {
		return apperr.BadRequest(what + " id is required")
	}
	return nil
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// resolveSlug returns the slug to store. An explicit slug that is taken is a
// conflict; a derived one gets a short random suffix instead.
func resolveSlug(explicit, source string, exists func(string) (bool, error)) (string, error) {
	if explicit != "" {
		taken, err := exists(explicit)
		if err != nil {
			return "", apperr.Internal("failed to check slug", err)
		}
		if taken {
			return "", apperr.Conflict("slug already in use")
		}
		return explicit, nil
	}

	base := Slugify(source)
	if base == "" {
		base = "listing"
	}
	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", apperr.Internal("failed to check slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", apperr.Conflict("could not derive a unique slug")
}

func parseDate(v *string) (*datatypes.Date, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return nil, apperr.Validation("available_from must be a YYYY-MM-DD date")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func encodeAmenities(list []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, a := range list {
		a = strings.TrimSpace(a)
		if a == "" || seen[strings.ToLower(a)] {
			continue
		}
		seen[strings.ToLower(a)] = true
		cleaned = append(cleaned, a)
	}
	b, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// removeObjects deletes stored objects on a best-effort basis. It runs on a
// context detached from the request so a client disconnect does not stop it.
func removeObjects(ctx context.Context, store storage.Store, keys []string, reason string) int {
	if len(keys) == 0 {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	failed := 0
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			failed++
			metrics.MediaRollbacks.WithLabelValues("failed").Inc()
			logger.Log.WithFields(logrus.Fields{
				"key":    key,
				"reason": reason,
				"error":  err,
			}).Warn("could not remove stored object")
			continue
		}
		metrics.MediaRollbacks.WithLabelValues("deleted").Inc()
	}
	if failed > 0 {
		logger.Log.Errorf("%d of %d objects left behind after %s", failed, len(keys), reason)
	}
	return failed
}
