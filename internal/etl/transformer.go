package etl

import (
	"fmt"
	"strings"

	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/BartekS5/uni-etl/pkg/utils"
	"go.uber.org/zap"
)

const listSeparator = ","

// Transformer filters records by a case-sensitive name substring and
// projects them to the output columns.
type Transformer struct {
	Filter    string
	Validator *Validator
	Log       *zap.Logger
}

func NewTransformer(filter string, log *zap.Logger) *Transformer {
	return &Transformer{
		Filter:    filter,
		Validator: NewValidator(),
		Log:       log,
	}
}

func (t *Transformer) Transform(data models.RawDataset) (*models.Table, error) {
	table, err := t.transform(data)
	if err != nil {
		t.Log.Error("Error transforming data: " + err.Error())
		return nil, err
	}
	t.Log.Info("Data transformed successfully")
	return table, nil
}

type keptRecord struct {
	index int
	rec   models.RawRecord
}

func (t *Transformer) transform(data models.RawDataset) (*models.Table, error) {
	if data == nil {
		return nil, fmt.Errorf("nothing to transform: %w", ErrNoData)
	}
	t.Log.Info(fmt.Sprintf("Total Number of universities from API %d", len(data)))

	var kept []keptRecord
	for i, rec := range data {
		name, err := t.Validator.RequireName(i, rec)
		if err != nil {
			return nil, err
		}
		if strings.Contains(name, t.Filter) {
			kept = append(kept, keptRecord{index: i, rec: rec})
		}
	}
	t.Log.Info(fmt.Sprintf("Number of universities in %s %d", strings.ToLower(t.Filter), len(kept)))

	table := &models.Table{Rows: make([]models.University, 0, len(kept))}
	for _, k := range kept {
		row, err := t.shape(k.index, k.rec)
		if err != nil {
			return nil, err
		}
		// Re-index from zero in post-filter order.
		row.Index = len(table.Rows)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (t *Transformer) shape(index int, rec models.RawRecord) (models.University, error) {
	if err := t.Validator.ValidateDocument(index, rec); err != nil {
		return models.University{}, err
	}

	domains, err := utils.JoinList(rec[models.FieldDomains], listSeparator)
	if err != nil {
		return models.University{}, &RecordError{Index: index, Field: models.FieldDomains, Err: err}
	}
	webPages, err := utils.JoinList(rec[models.FieldWebPages], listSeparator)
	if err != nil {
		return models.University{}, &RecordError{Index: index, Field: models.FieldWebPages, Err: err}
	}

	return models.University{
		Domains:  domains,
		Country:  rec[models.FieldCountry].(string),
		WebPages: webPages,
		Name:     rec[models.FieldName].(string),
	}, nil
}
