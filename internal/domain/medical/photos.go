package medical

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"guidedog-records/internal/ports/blob"

	"github.com/google/uuid"
)

const maxPhotoBytes = 5 << 20

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoBlobStore   = errors.New("photo storage not configured")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeImage acepta un data URL ("data:image/png;base64,....") o base64 pelado.
// Sin content type explícito se detecta por los primeros bytes.
func DecodeImage(encoded, contentType string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, "", ErrInvalidInput
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		encoded = payload
	}
	if encoded == "" {
		return nil, "", ErrInvalidInput
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, "", ErrInvalidInput
		}
	}
	if len(data) == 0 || len(data) > maxPhotoBytes {
		return nil, "", ErrInvalidInput
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, "", ErrInvalidInput
	}
	return data, contentType, nil
}

func photoKey(recordID, photoID, contentType string) string {
	return fmt.Sprintf("medical/%s/%s%s", recordID, photoID, allowedImageTypes[contentType])
}

// AddPhoto sube la imagen al blob store y la agrega al registro.
func (s *Service) AddPhoto(ctx context.Context, recordID string, data []byte, contentType string) (Photo, error) {
	if s.blobs == nil {
		return Photo{}, ErrNoBlobStore
	}
	rec, err := s.GetByID(ctx, recordID)
	if err != nil {
		return Photo{}, err
	}
	if _, ok := allowedImageTypes[contentType]; !ok || len(data) == 0 {
		return Photo{}, ErrInvalidInput
	}

	p := Photo{ID: uuid.NewString(), ContentType: contentType}
	p.Key = photoKey(rec.ID, p.ID, contentType)

	if _, err := s.blobs.Put(ctx, p.Key, bytes.NewReader(data), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"record_id": rec.ID, "dog_id": rec.DogID},
	}); err != nil {
		return Photo{}, err
	}

	rec.Photos = append(rec.Photos, p)
	rec.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, rec); err != nil {
		// no dejar el objeto sin registro que lo apunte
		_, _ = s.blobs.Delete(ctx, p.Key)
		return Photo{}, err
	}
	return p, nil
}

// OpenPhoto devuelve el contenido de la foto; el caller cierra el reader.
func (s *Service) OpenPhoto(ctx context.Context, recordID, photoID string) (Photo, io.ReadCloser, error) {
	if s.blobs == nil {
		return Photo{}, nil, ErrNoBlobStore
	}
	rec, err := s.GetByID(ctx, recordID)
	if err != nil {
		return Photo{}, nil, err
	}
	p, ok := findPhoto(rec, photoID)
	if !ok {
		return Photo{}, nil, ErrPhotoNotFound
	}

	_, rc, err := s.blobs.Get(ctx, p.Key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return Photo{}, nil, ErrPhotoNotFound
		}
		return Photo{}, nil, err
	}
	return p, rc, nil
}

func (s *Service) DeletePhoto(ctx context.Context, recordID, photoID string) error {
	if s.blobs == nil {
		return ErrNoBlobStore
	}
	rec, err := s.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	p, ok := findPhoto(rec, photoID)
	if !ok {
		return ErrPhotoNotFound
	}

	kept := make([]Photo, 0, len(rec.Photos)-1)
	for _, x := range rec.Photos {
		if x.ID != p.ID {
			kept = append(kept, x)
		}
	}
	rec.Photos = kept
	rec.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, rec); err != nil {
		return err
	}

	if _, err := s.blobs.Delete(ctx, p.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrPhotoCleanup, err)
	}
	return nil
}

func findPhoto(rec Record, photoID string) (Photo, bool) {
	for _, p := range rec.Photos {
		if p.ID == photoID {
			return p, true
		}
	}
	return Photo{}, false
}
