package guide

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrValidation is returned when a submission is missing a field or a photo.
	ErrValidation = errors.New("all fields are required")
	// ErrFileType is returned when the photo extension is not in AllowedExtensions.
	ErrFileType = errors.New("invalid file type")
	// ErrNotFound is returned when no guide matches the given ID.
	ErrNotFound = errors.New("guide not found")
)

// AllowedExtensions lists the accepted photo types, lower case and without the dot.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif"}

// Repository persists guides. *storage.Repository satisfies it.
type Repository interface {
	CreateGuide(ctx context.Context, g *Guide) error
	ListGuides(ctx context.Context) ([]*Guide, error)
	UpdateCityCondition(ctx context.Context, id uuid.UUID, condition string) error
}

// Service validates guide submissions, stores photos and delegates
// persistence to a Repository.
type Service struct {
	repo      Repository
	uploadDir string
	validate  *validator.Validate
	log       *slog.Logger
}

// NewService constructs a Service that writes photos under uploadDir.
func NewService(repo Repository, uploadDir string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:      repo,
		uploadDir: uploadDir,
		validate:  validator.New(),
		log:       log,
	}
}

// Add registers a guide. The photo is written to disk before the record is
// inserted and removed again if the insert fails.
func (s *Service) Add(ctx context.Context, form Form, photo *Photo) (*Guide, error) {
	form = trimForm(form)
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if photo == nil || photo.Content == nil || strings.TrimSpace(photo.Filename) == "" {
		return nil, fmt.Errorf("%w: photo", ErrValidation)
	}
	if !AllowedFile(photo.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrFileType, photo.Filename)
	}

	age, err := nonNegative(form.Age)
	if err != nil {
		return nil, fmt.Errorf("%w: age: %v", ErrValidation, err)
	}
	years, err := nonNegative(form.YearsExperience)
	if err != nil {
		return nil, fmt.Errorf("%w: years_experience: %v", ErrValidation, err)
	}

	name, err := s.savePhoto(photo)
	if err != nil {
		return nil, err
	}

	g := &Guide{
		ID:              uuid.New(),
		Name:            form.Name,
		Age:             age,
		Gender:          form.Gender,
		YearsExperience: years,
		City:            form.City,
		CityCondition:   form.CityCondition,
		PhotoPath:       name,
	}
	if err := s.repo.CreateGuide(ctx, g); err != nil {
		if rmErr := os.Remove(filepath.Join(s.uploadDir, name)); rmErr != nil {
			s.log.Warn("removing orphaned photo", "file", name, "err", rmErr)
		}
		return nil, fmt.Errorf("creating guide: %w", err)
	}

	s.log.Info("guide added", "id", g.ID, "city", g.City)
	return g, nil
}

// List returns every guide, newest first.
func (s *Service) List(ctx context.Context) ([]*Guide, error) {
	guides, err := s.repo.ListGuides(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing guides: %w", err)
	}
	return guides, nil
}

// UpdateCityCondition sets the condition text on the guide identified by id.
// A malformed id is reported as ErrNotFound.
func (s *Service) UpdateCityCondition(ctx context.Context, id, condition string) error {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return fmt.Errorf("%w: city_condition", ErrValidation)
	}

	gid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	if err := s.repo.UpdateCityCondition(ctx, gid, condition); err != nil {
		return fmt.Errorf("updating city condition for guide %s: %w", gid, err)
	}
	return nil
}

func (s *Service) savePhoto(photo *Photo) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir %s: %w", s.uploadDir, err)
	}

	name := uuid.NewString() + "_" + SecureFilename(photo.Filename)
	path := filepath.Join(s.uploadDir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating photo %s: %w", name, err)
	}
	if _, err := io.Copy(f, photo.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing photo %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing photo %s: %w", name, err)
	}
	return name, nil
}

// AllowedFile reports whether filename has one of AllowedExtensions.
func AllowedFile(filename string) bool {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 || dot == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[dot+1:])
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// SecureFilename reduces an uploaded name to a safe base name: path
// components are dropped and anything outside [A-Za-z0-9._-] becomes '_'.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}

func nonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative: %d", n)
	}
	return n, nil
}

func trimForm(f Form) Form {
	return Form{
		Name:            strings.TrimSpace(f.Name),
		Age:             strings.TrimSpace(f.Age),
		Gender:          strings.TrimSpace(f.Gender),
		YearsExperience: strings.TrimSpace(f.YearsExperience),
		City:            strings.TrimSpace(f.City),
		CityCondition:   strings.TrimSpace(f.CityCondition),
	}
}
