package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const CategoryIDSeparator = ":"

type ClassificationSubType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ClassificationType struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	SubTypes []ClassificationSubType `json:"subtypes"`
}

// ClassificationTypeList - json column
type ClassificationTypeList []ClassificationType

// Scan implements sql.Scanner interface
func (l *ClassificationTypeList) Scan(value interface{}) error {
	if value == nil {
		*l = ClassificationTypeList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan ClassificationTypeList: expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface
func (l ClassificationTypeList) Value() (driver.Value, error) {
	b, err := json.Marshal([]ClassificationType(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Classification is a top level category with its types and subtypes.
type Classification struct {
	ID    string                 `db:"id" json:"id"`
	Name  string                 `db:"name" json:"name"`
	Types ClassificationTypeList `db:"types" json:"types"`
}

// Classifications is the read-only taxonomy keyed by category id.
type Classifications map[string]Classification

func NewClassifications(list []Classification) Classifications {
	m := make(Classifications, len(list))
	for _, c := range list {
		m[c.ID] = c
	}
	return m
}

// Name resolves a composite id ("cat", "cat:type" or "cat:type:sub") to its label.
func (m Classifications) Name(compositeID string) (string, bool) {
	parts := strings.Split(compositeID, CategoryIDSeparator)
	c, ok := m[parts[0]]
	if !ok || len(parts) > 3 {
		return "", false
	}
	if len(parts) == 1 {
		return c.Name, true
	}
	for _, t := range c.Types {
		if t.ID != parts[1] {
			continue
		}
		if len(parts) == 2 {
			return t.Name, true
		}
		for _, st := range t.SubTypes {
			if st.ID == parts[2] {
				return st.Name, true
			}
		}
	}
	return "", false
}

// Valid keeps the ids that exist in the taxonomy, preserving order.
func (m Classifications) Valid(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := m.Name(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// DisplayValue is the sorted, comma separated list of the most specific category names.
func (m Classifications) DisplayValue(b *Business) string {
	ids := b.CategorySubTypeIDs
	if len(ids) == 0 {
		ids = b.CategoryTypeIDs
	}
	if len(ids) == 0 {
		ids = b.CategoryIDs
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := m.Name(id); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
