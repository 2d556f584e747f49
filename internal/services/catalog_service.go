// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/javajoker/foodgram-backend/internal/i18n"
	"github.com/javajoker/foodgram-backend/internal/models"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

type FixtureFormat string

const (
	FormatCSV  FixtureFormat = "csv"
	FormatJSON FixtureFormat = "json"
)

type CatalogService struct {
	store repository.Store
}

// ImportReport counts the outcome of a fixture import.
type ImportReport struct {
	Created int `json:"created"`
	Existed int `json:"existed"`
	Skipped int `json:"skipped"`
}

type ingredientRecord struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

type tagRecord struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor"`
	Slug  string `json:"slug" validate:"required,slug"`
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]TagView, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	views := make([]TagView, 0, len(tags))
	for i := range tags {
		views = append(views, ToTagView(&tags[i]))
	}
	return views, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*TagView, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyTagNotFound, id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := ToTagView(tag)
	return &view, nil
}

// ListIngredients returns ingredients whose name starts with prefix,
// ignoring case. An empty prefix returns the whole catalog.
func (s *CatalogService) ListIngredients(ctx context.Context, prefix string) ([]IngredientView, error) {
	ingredients, err := s.store.ListIngredients(ctx, normalizeName(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	views := make([]IngredientView, 0, len(ingredients))
	for i := range ingredients {
		views = append(views, ToIngredientView(&ingredients[i]))
	}
	return views, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*IngredientView, error) {
	ingredient, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(i18n.KeyIngredientNotFound, id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := ToIngredientView(ingredient)
	return &view, nil
}

// DeleteIngredient removes an ingredient no recipe refers to. Only admins
// may delete catalog entries.
func (s *CatalogService) DeleteIngredient(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	if !viewer.Authenticated || viewer.Role != models.RoleAdmin {
		return permissionError(i18n.KeyAccessDenied)
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.GetIngredient(ctx, id); err != nil {
			return err
		}

		inUse, err := tx.IngredientInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return repository.ErrReferenced
		}
		return tx.DeleteIngredient(ctx, id)
	})
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return notFoundError(i18n.KeyIngredientNotFound, id.String())
	case errors.Is(err, repository.ErrReferenced):
		return conflictError(i18n.KeyIngredientInUse, err)
	default:
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	logrus.WithField("ingredient_id", id).Info("Ingredient deleted")
	return nil
}

// ImportIngredients loads name/measurement_unit records. Rows that fail
// validation or storage are logged and skipped.
func (s *CatalogService) ImportIngredients(ctx context.Context, r io.Reader, format FixtureFormat) (*ImportReport, error) {
	records, err := decodeFixture[ingredientRecord](r, format, func(row map[string]string) ingredientRecord {
		return ingredientRecord{Name: row["name"], MeasurementUnit: row["measurement_unit"]}
	})
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for i, record := range records {
		record.Name = normalizeName(record.Name)
		record.MeasurementUnit = normalizeName(record.MeasurementUnit)

		entry := logrus.WithFields(logrus.Fields{"row": i + 1, "name": record.Name})
		if err := utils.ValidateStruct(&record); err != nil {
			entry.WithError(err).Warn("Skipping invalid ingredient row")
			report.Skipped++
			continue
		}

		created, err := s.store.GetOrCreateIngredient(ctx, &models.Ingredient{
			Name:            record.Name,
			MeasurementUnit: record.MeasurementUnit,
		})
		if err != nil {
			entry.WithError(err).Warn("Skipping ingredient row")
			report.Skipped++
			continue
		}
		report.count(created)
	}

	logrus.WithFields(logrus.Fields{
		"created": report.Created,
		"existed": report.Existed,
		"skipped": report.Skipped,
	}).Info("Ingredients imported")
	return report, nil
}

// ImportTags loads name/color/slug records, matching existing tags by slug.
func (s *CatalogService) ImportTags(ctx context.Context, r io.Reader, format FixtureFormat) (*ImportReport, error) {
	records, err := decodeFixture[tagRecord](r, format, func(row map[string]string) tagRecord {
		return tagRecord{Name: row["name"], Color: row["color"], Slug: row["slug"]}
	})
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for i, record := range records {
		record.Name = normalizeName(record.Name)
		record.Color = strings.ToUpper(strings.TrimSpace(record.Color))
		record.Slug = strings.TrimSpace(record.Slug)

		entry := logrus.WithFields(logrus.Fields{"row": i + 1, "slug": record.Slug})
		if err := utils.ValidateStruct(&record); err != nil {
			entry.WithError(err).Warn("Skipping invalid tag row")
			report.Skipped++
			continue
		}

		created, err := s.store.GetOrCreateTag(ctx, &models.Tag{
			Name:  record.Name,
			Color: record.Color,
			Slug:  record.Slug,
		})
		if err != nil {
			entry.WithError(err).Warn("Skipping tag row")
			report.Skipped++
			continue
		}
		report.count(created)
	}

	logrus.WithFields(logrus.Fields{
		"created": report.Created,
		"existed": report.Existed,
		"skipped": report.Skipped,
	}).Info("Tags imported")
	return report, nil
}

func (r *ImportReport) count(created bool) {
	if created {
		r.Created++
	} else {
		r.Existed++
	}
}

// decodeFixture reads a JSON array of objects or a CSV file whose first
// row names the columns.
func decodeFixture[T any](r io.Reader, format FixtureFormat, fromRow func(map[string]string) T) ([]T, error) {
	switch format {
	case FormatJSON:
		var records []T
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode fixture: %w", err)
		}
		return records, nil

	case FormatCSV:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture header: %w", err)
		}
		for i := range header {
			header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
		}

		var records []T
		for {
			line, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read fixture row: %w", err)
			}

			row := make(map[string]string, len(header))
			for i, column := range header {
				if i < len(line) {
					row[column] = line[i]
				}
			}
			records = append(records, fromRow(row))
		}
		return records, nil

	default:
		return nil, fmt.Errorf("unsupported fixture format %q", format)
	}
}

// FixtureFormatFromPath picks the decoder by file extension.
func FixtureFormatFromPath(path string) FixtureFormat {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
