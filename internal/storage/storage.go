package storage

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Column widths of the name tables, in characters.
const (
	MaxIDLength   = 64
	MaxNameLength = 255
)

var (
	// ErrEmptyName is returned when a name or its identifier is blank.
	ErrEmptyName = errors.New("identifier and name must not be empty")

	// ErrNameTooLong is returned when a name or its identifier exceeds its column width.
	ErrNameTooLong = errors.New("identifier or name too long")
)

// NameStore maps resource GUIDs and shop IDs to human-readable names.
type NameStore interface {
	// ResourceNames returns every stored resource name keyed by GUID.
	ResourceNames(ctx context.Context) (map[string]string, error)

	// ShopNames returns every stored shop name keyed by shop ID.
	ShopNames(ctx context.Context) (map[string]string, error)

	// SaveResourceName inserts or replaces the name of a resource.
	SaveResourceName(ctx context.Context, guid, name string) error

	// SaveShopName inserts or replaces the name of a shop.
	SaveShopName(ctx context.Context, shopID, name string) error

	// Close closes the storage connection.
	Close() error
}

func validate(id, name string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(id) > MaxIDLength || utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
