package store

import (
	"context"
	"math"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	kvTable     = "kv_entries"
	eventsTable = "progress_events"
)

var (
	// kvColumns holds the columns for the "kv_entries" table.
	kvColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "entry_key", Type: field.TypeString, Unique: true},
		{Name: "payload", Type: field.TypeString, Size: math.MaxInt32},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// kvEntriesTable holds the schema information for the "kv_entries" table.
	kvEntriesTable = &schema.Table{
		Name:       kvTable,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	// eventColumns holds the columns for the "progress_events" table.
	eventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "course_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "topic_id", Type: field.TypeString, Nullable: true},
		{Name: "position", Type: field.TypeFloat64, Nullable: true},
		{Name: "attempt_id", Type: field.TypeString, Nullable: true},
		{Name: "score", Type: field.TypeInt, Nullable: true},
		{Name: "passed", Type: field.TypeBool, Nullable: true},
	}
	// progressEventsTable holds the schema information for the "progress_events" table.
	progressEventsTable = &schema.Table{
		Name:       eventsTable,
		Columns:    eventColumns,
		PrimaryKey: []*schema.Column{eventColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "progressevent_course_id",
				Unique:  false,
				Columns: []*schema.Column{eventColumns[3]},
			},
			{
				Name:    "progressevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{eventColumns[2]},
			},
		},
	}

	tables = []*schema.Table{
		kvEntriesTable,
		progressEventsTable,
	}
)

// migrate creates or updates all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
