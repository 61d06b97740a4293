package models

// Source fields read from a RawRecord.
const (
	FieldName     = "name"
	FieldCountry  = "country"
	FieldDomains  = "domains"
	FieldWebPages = "web_pages"
)

// IndexColumn is the integer row index added by the loader.
const IndexColumn = "index"

// ColumnConfig maps one output column to the source field it is built from.
type ColumnConfig struct {
	Column string
	Field  string
	// Joined columns are lists in the source and comma-joined text in the table.
	Joined bool
}

// ColumnMapping is the projection of the transformed table, in column order.
var ColumnMapping = []ColumnConfig{
	{Column: "domains", Field: FieldDomains, Joined: true},
	{Column: "country", Field: FieldCountry},
	{Column: "web_pages", Field: FieldWebPages, Joined: true},
	{Column: "name", Field: FieldName},
}

// ColumnNames returns the data column names, without the index column.
func ColumnNames() []string {
	names := make([]string, len(ColumnMapping))
	for i, c := range ColumnMapping {
		names[i] = c.Column
	}
	return names
}

// Values returns the row's data values in ColumnMapping order.
func (u University) Values() []interface{} {
	return []interface{}{u.Domains, u.Country, u.WebPages, u.Name}
}
