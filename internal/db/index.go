package db

import (
	"errors"
	"strconv"
)

// IndexFieldType is the FT field type.
type IndexFieldType string

const (
	// IndexFieldText is a full-text (BM25-scored) field.
	IndexFieldText IndexFieldType = "TEXT"
	// IndexFieldTag is an exact-match tag field.
	IndexFieldTag IndexFieldType = "TAG"
)

// StorageType is the FT index storage backend.
type StorageType string

// StorageHash indexes HASH keys.
const StorageHash StorageType = "HASH"

// IndexField describes one indexed field.
type IndexField struct {
	Name  string
	Type  IndexFieldType
	Alias string

	// TEXT options
	TextWeight float64 // 0 = default weight

	// TAG options
	TagSeparator string
}

// IndexDefinition is a complete FT index definition used by FT.CREATE.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		key := f.Name
		if f.Alias != "" {
			key = f.Alias
		}
		if seen[key] {
			return errors.New("duplicate field name: " + key)
		}
		seen[key] = true
	}

	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
