package extractor

// RefType classifies how a statement uses a table.
type RefType int

const (
	// RefSelect marks tables read by a query (SELECT, COPY ... TO, read
	// sides of DML).
	RefSelect RefType = iota
	// RefDML marks tables whose rows are mutated (INSERT, UPDATE, DELETE,
	// COPY ... FROM).
	RefDML
	// RefDDL marks tables whose structure is altered (CREATE, ALTER, DROP,
	// TRUNCATE, VACUUM, GRANT on tables, LOCK, index/trigger/rule/view).
	RefDDL
)

func (t RefType) String() string {
	switch t {
	case RefSelect:
		return "select"
	case RefDML:
		return "dml"
	case RefDDL:
		return "ddl"
	default:
		return "unknown"
	}
}

// MarshalText lets RefType render as its lowercase word in JSON and YAML
// output.
func (t RefType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Reference is one table referenced by a statement. Name is the qualified
// form (schema.relname when a schema is present); DROP statements emit the
// dotted object name directly.
type Reference struct {
	Name     string  `json:"name" yaml:"name"`
	Type     RefType `json:"type" yaml:"type"`
	Schema   string  `json:"schema,omitempty" yaml:"schema,omitempty"`
	Relname  string  `json:"relname,omitempty" yaml:"relname,omitempty"`
	Location int     `json:"location,omitempty" yaml:"location,omitempty"`
	Inh      bool    `json:"inh,omitempty" yaml:"inh,omitempty"`
}

// Result is everything the extractor reports for one statement list.
type Result struct {
	Tables   []Reference       `json:"tables" yaml:"tables"`
	Aliases  map[string]string `json:"aliases" yaml:"aliases"`
	CTENames []string          `json:"cte_names" yaml:"cte_names"`
}

// TableNames returns the qualified names of all referenced tables, in
// first-occurrence order.
func (r *Result) TableNames() []string {
	names := make([]string, 0, len(r.Tables))
	for _, t := range r.Tables {
		names = append(names, t.Name)
	}
	return names
}
