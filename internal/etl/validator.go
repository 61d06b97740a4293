package etl

import (
	"errors"
	"fmt"

	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/BartekS5/uni-etl/pkg/utils"
)

var errMissing = errors.New("missing required field")

// Validator enforces the record schema. Any violation fails the whole
// transform; no partial table is produced.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// RequireName returns the record's name. Every record needs one because the
// filter reads it.
func (v *Validator) RequireName(index int, rec models.RawRecord) (string, error) {
	name, ok, err := utils.GetString(rec, models.FieldName)
	if err != nil {
		return "", &RecordError{Index: index, Field: models.FieldName, Err: err}
	}
	if !ok {
		return "", &RecordError{Index: index, Field: models.FieldName, Err: errMissing}
	}
	return name, nil
}

// ValidateDocument checks the projected fields of a record that passed the
// filter. A null list counts as empty.
func (v *Validator) ValidateDocument(index int, rec models.RawRecord) error {
	for _, col := range models.ColumnMapping {
		val, ok := rec[col.Field]
		if !ok {
			return &RecordError{Index: index, Field: col.Field, Err: errMissing}
		}
		if col.Joined {
			switch val.(type) {
			case nil, []interface{}:
			default:
				return &RecordError{Index: index, Field: col.Field, Err: fmt.Errorf("expected a list, got %T", val)}
			}
			continue
		}
		if _, isString := val.(string); !isString {
			return &RecordError{Index: index, Field: col.Field, Err: fmt.Errorf("expected a string, got %T", val)}
		}
	}
	return nil
}
