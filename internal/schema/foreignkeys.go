// Package schema holds the static column metadata the console derives its
// behavior from. The foreign-key table maps backend column names to the
// entity they reference and the attribute shown in place of the raw id.
// Built at startup, read-only after — no mutex needed.
package schema

// ForeignKey describes one foreign-key column.
type ForeignKey struct {
	// Entity is the backend collection the column references.
	Entity string
	// DisplayField is the attribute shown instead of the raw id.
	DisplayField string
	// Label is the human-readable column title used by forms.
	Label string
}

// foreignKeys maps exact backend column names to their reference metadata.
var foreignKeys = map[string]ForeignKey{
	"account_id":        {Entity: "accounts", DisplayField: "name", Label: "Account"},
	"parent_account_id": {Entity: "accounts", DisplayField: "name", Label: "Parent Account"},
	"location_id":       {Entity: "locations", DisplayField: "name", Label: "Location"},
	"asset_id":          {Entity: "assets", DisplayField: "name", Label: "Asset"},
	"work_order_id":     {Entity: "work_orders", DisplayField: "title", Label: "Work Order"},
	"contaminant_id":    {Entity: "contaminants", DisplayField: "name", Label: "Contaminant"},
	"user_id":           {Entity: "users", DisplayField: "email", Label: "User"},
	"assigned_to":       {Entity: "users", DisplayField: "email", Label: "Assigned To"},
	"created_by":        {Entity: "users", DisplayField: "email", Label: "Created By"},
	"role_id":           {Entity: "roles", DisplayField: "name", Label: "Role"},
	"address_id":        {Entity: "addresses", DisplayField: "display_address", Label: "Address"},
	"content_block_id":  {Entity: "content_blocks", DisplayField: "title", Label: "Content Block"},
}

// IsForeignKeyField reports whether the column is a recognized foreign key.
func IsForeignKeyField(field string) bool {
	_, ok := foreignKeys[field]
	return ok
}

// Config returns the foreign-key metadata for a column.
// The second result is false when the column is not a recognized foreign key.
func Config(field string) (ForeignKey, bool) {
	fk, ok := foreignKeys[field]
	return fk, ok
}

// Fields returns every recognized foreign-key column name.
func Fields() []string {
	out := make([]string, 0, len(foreignKeys))
	for field := range foreignKeys {
		out = append(out, field)
	}
	return out
}
