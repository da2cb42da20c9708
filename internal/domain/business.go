package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

// StringList - json array column
type StringList []string

// Scan implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan StringList: expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// UUIDList - json array column of region ids
type UUIDList []uuid.UUID

// Scan implements sql.Scanner interface
func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan UUIDList: expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Business is a point of interest.
type Business struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Addr1       string    `db:"addr1"`
	City        string    `db:"city"`
	State       string    `db:"state"`
	Zip         string    `db:"zip"`
	Phone       string    `db:"phone"`
	Website     string    `db:"website"`

	CategoryIDs        StringList `db:"category_ids"`          // "cat"
	CategoryTypeIDs    StringList `db:"category_type_ids"`     // "cat:type"
	CategorySubTypeIDs StringList `db:"category_sub_type_ids"` // "cat:type:sub"

	Longitude *float64 `db:"longitude"` // nullable
	Latitude  *float64 `db:"latitude"`  // nullable

	Neighborhoods StringList `db:"neighborhoods"`
	RegionIDs     UUIDList   `db:"region_ids"`

	Published bool `db:"published"`
	Featured  bool `db:"featured"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Location returns nil when the business has no coordinate or sits at (0,0).
func (b *Business) Location() *geo.Point {
	if b.Longitude == nil || b.Latitude == nil {
		return nil
	}
	p := geo.NewPoint(*b.Longitude, *b.Latitude)
	if p.IsZero() {
		return nil
	}
	return &p
}

func (b *Business) SetLocation(p *geo.Point) {
	if p == nil {
		b.Longitude, b.Latitude = nil, nil
		return
	}
	lon, lat := p.Lon, p.Lat
	b.Longitude, b.Latitude = &lon, &lat
}

func (b *Business) SetAssignment(a RegionAssignment) {
	b.RegionIDs = UUIDList(a.RegionIDs)
	b.Neighborhoods = StringList{a.DisplayName}
}

// NeighborhoodsDisplayValue joins the region names sorted alphabetically.
func (b *Business) NeighborhoodsDisplayValue() string {
	names := make([]string, len(b.Neighborhoods))
	copy(names, b.Neighborhoods)
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// SameLocation compares two optional coordinates.
func SameLocation(a, b *geo.Point) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
