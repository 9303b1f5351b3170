package schema

import "testing"

func TestIsForeignKeyField(t *testing.T) {
	if !IsForeignKeyField("account_id") {
		t.Fatalf("expected account_id to be a foreign key")
	}
	if IsForeignKeyField("name") {
		t.Fatalf("expected name to not be a foreign key")
	}
	if IsForeignKeyField("") {
		t.Fatalf("expected empty field to not be a foreign key")
	}
}

func TestConfig(t *testing.T) {
	fk, ok := Config("work_order_id")
	if !ok {
		t.Fatalf("expected work_order_id config")
	}
	if fk.Entity != "work_orders" || fk.DisplayField != "title" {
		t.Fatalf("unexpected mapping: %+v", fk)
	}

	if _, ok := Config("unknown_id"); ok {
		t.Fatalf("expected no config for unknown field")
	}
}

func TestFields_CoverEveryMapping(t *testing.T) {
	fields := Fields()
	if len(fields) == 0 {
		t.Fatalf("expected non-empty field list")
	}
	for _, field := range fields {
		if !IsForeignKeyField(field) {
			t.Fatalf("field %q listed but not recognized", field)
		}
	}
}
