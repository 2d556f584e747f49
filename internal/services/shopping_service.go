// internal/services/shopping_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/document"
	"github.com/javajoker/foodgram-backend/internal/repository"
)

// ShoppingItem is the total amount of one ingredient in one unit across
// every recipe in a cart.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

// ShoppingList is an ordered, finite sequence of items. All may be ranged
// over any number of times.
type ShoppingList struct {
	items []ShoppingItem
}

func (l *ShoppingList) All() iter.Seq[ShoppingItem] {
	return func(yield func(ShoppingItem) bool) {
		for _, item := range l.items {
			if !yield(item) {
				return
			}
		}
	}
}

func (l *ShoppingList) Len() int {
	return len(l.items)
}

// Items returns a copy of the list.
func (l *ShoppingList) Items() []ShoppingItem {
	return append([]ShoppingItem(nil), l.items...)
}

// ShoppingDocument is a rendered shopping list ready for download.
type ShoppingDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ShoppingListService struct {
	store repository.ShoppingListRepository
	cfg   config.ShoppingListConfig
	tag   language.Tag
}

func NewShoppingListService(store repository.ShoppingListRepository, cfg config.ShoppingListConfig) *ShoppingListService {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		logrus.WithError(err).WithField("locale", cfg.Locale).Warn("Unknown shopping list locale, falling back to und")
		tag = language.Und
	}
	return &ShoppingListService{store: store, cfg: cfg, tag: tag}
}

// Aggregate sums ingredient amounts over the user's cart, grouped by
// ingredient name and unit, ordered by name then unit.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) (*ShoppingList, error) {
	rows, err := s.store.ShoppingList(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}

	items := make([]ShoppingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ShoppingItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.TotalAmount,
		})
	}

	// Collators keep internal buffers and must not be shared across goroutines.
	collator := collate.New(s.tag)
	sort.SliceStable(items, func(i, j int) bool {
		if c := collator.CompareString(items[i].Name, items[j].Name); c != 0 {
			return c < 0
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})

	return &ShoppingList{items: items}, nil
}

// Export renders the user's shopping list as a PDF document.
func (s *ShoppingListService) Export(ctx context.Context, viewer Viewer) (*ShoppingDocument, error) {
	list, err := s.Aggregate(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := document.RenderShoppingList(&buf, s.cfg.Title, documentItems(list)); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": viewer.UserID,
		"items":   list.Len(),
	}).Debug("Shopping list exported")

	return &ShoppingDocument{
		Filename:    s.cfg.Filename,
		ContentType: "application/pdf",
		Content:     buf.Bytes(),
	}, nil
}

func documentItems(list *ShoppingList) iter.Seq[document.Item] {
	return func(yield func(document.Item) bool) {
		for item := range list.All() {
			if !yield(document.Item{Name: item.Name, Unit: item.MeasurementUnit, Amount: item.Amount}) {
				return
			}
		}
	}
}
