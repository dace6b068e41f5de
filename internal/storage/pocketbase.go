package storage

import (
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/daos"
	"github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/migrations/logs"
	pbModels "github.com/pocketbase/pocketbase/models"
	"github.com/pocketbase/pocketbase/models/schema"
	"github.com/pocketbase/pocketbase/tools/migrate"

	"popcompare/internal/logger"
	"popcompare/internal/models"
)

// ReportStore persists comparison rows in an embedded PocketBase database.
// No HTTP server is started.
type ReportStore struct {
	app *pocketbase.PocketBase
}

// OpenReportStore bootstraps PocketBase in dataDir and applies its system migrations
func OpenReportStore(dataDir string) (*ReportStore, error) {
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir:  dataDir,
		HideStartBanner: true,
	})

	if err := app.Bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap PocketBase: %w", err)
	}

	connections := []struct {
		db   *dbx.DB
		list migrate.MigrationsList
	}{
		{db: app.DB(), list: migrations.AppMigrations},
		{db: app.LogsDB(), list: logs.LogsMigrations},
	}
	for _, c := range connections {
		runner, err := migrate.NewRunner(c.db, c.list)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare migrations: %w", err)
		}
		if _, err := runner.Up(); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return &ReportStore{app: app}, nil
}

const maxCollectionName = 255

// CollectionName is the collection holding the report of a snapshot pair.
// Labels are escaped without loss: lowercase letters and digits are kept,
// every other byte becomes _xx (hex), and the labels are joined by _vs_.
// Distinct label pairs therefore never share a collection.
func CollectionName(before, after string) (string, error) {
	name := "popcompare_" + escapeLabel(before) + "_vs_" + escapeLabel(after)
	if len(name) > maxCollectionName {
		return "", fmt.Errorf("labels %q/%q are too long to name a report collection", before, after)
	}
	return name, nil
}

func escapeLabel(label string) string {
	var b strings.Builder
	for i := 0; i < len(label); i++ {
		c := label[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02x", c)
	}
	return b.String()
}

func reportSchema() schema.Schema {
	number := func(name string) *schema.SchemaField {
		return &schema.SchemaField{Name: name, Type: schema.FieldTypeNumber}
	}
	return schema.NewSchema(
		number("position"),
		&schema.SchemaField{Name: "region", Type: schema.FieldTypeText, Required: true},
		&schema.SchemaField{Name: "region_name", Type: schema.FieldTypeText},
		number("before_pop"),
		number("after_pop"),
		number("before_wa"),
		number("after_wa"),
		number("before_endos"),
		number("after_endos"),
		number("pop_delta"),
		number("pop_pct"),
		&schema.SchemaField{Name: "pop_pct_defined", Type: schema.FieldTypeBool},
		number("wa_delta"),
		number("wa_pct"),
		&schema.SchemaField{Name: "wa_pct_defined", Type: schema.FieldTypeBool},
	)
}

// SaveReport replaces the stored report of the before/after pair with rows
func (s *ReportStore) SaveReport(before, after string, rows []models.ComparisonRow) error {
	name, err := CollectionName(before, after)
	if err != nil {
		return err
	}

	if existing, err := s.app.Dao().FindCollectionByNameOrId(name); err == nil {
		logger.L().Info("report_replace", "collection", name)
		if err := s.app.Dao().DeleteCollection(existing); err != nil {
			return fmt.Errorf("failed to drop previous report: %w", err)
		}
	}

	collection := &pbModels.Collection{
		Name:   name,
		Type:   pbModels.CollectionTypeBase,
		Schema: reportSchema(),
	}
	if err := s.app.Dao().SaveCollection(collection); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	err = s.app.Dao().RunInTransaction(func(txDao *daos.Dao) error {
		for i, row := range rows {
			record := pbModels.NewRecord(collection)
			record.Set("position", i)
			record.Set("region", row.Key)
			record.Set("region_name", row.Name)
			record.Set("before_pop", row.Before.Population)
			record.Set("after_pop", row.After.Population)
			record.Set("before_wa", row.Before.WAMembers)
			record.Set("after_wa", row.After.WAMembers)
			record.Set("before_endos", row.Before.Endorsements)
			record.Set("after_endos", row.After.Endorsements)
			record.Set("pop_delta", row.PopulationDelta)
			record.Set("pop_pct", row.PopulationChange.Ratio)
			record.Set("pop_pct_defined", row.PopulationChange.Defined)
			record.Set("wa_delta", row.WADelta)
			record.Set("wa_pct", row.WAChange.Ratio)
			record.Set("wa_pct_defined", row.WAChange.Defined)
			if err := txDao.SaveRecord(record); err != nil {
				return fmt.Errorf("failed to save record for %s: %w", row.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.L().Info("report_saved", "collection", name, "rows", len(rows))
	return nil
}

// ReportRows reads a stored report back in its original row order.
// A non-empty regionKey restricts the result to that region.
func (s *ReportStore) ReportRows(before, after, regionKey string) ([]models.ComparisonRow, error) {
	name, err := CollectionName(before, after)
	if err != nil {
		return nil, err
	}
	collection, err := s.app.Dao().FindCollectionByNameOrId(name)
	if err != nil {
		return nil, fmt.Errorf("no stored report for %s/%s: %w", before, after, err)
	}

	query := s.app.Dao().RecordQuery(collection).OrderBy("position ASC")
	if regionKey != "" {
		query.AndWhere(dbx.HashExp{"region": models.NormalizeName(regionKey)})
	}

	var records []*pbModels.Record
	if err := query.All(&records); err != nil {
		return nil, fmt.Errorf("failed to fetch report rows: %w", err)
	}

	rows := make([]models.ComparisonRow, len(records))
	for i, record := range records {
		rows[i] = models.ComparisonRow{
			Key:  record.GetString("region"),
			Name: record.GetString("region_name"),
			Before: models.RegionAggregate{
				Population:   record.GetInt("before_pop"),
				WAMembers:    record.GetInt("before_wa"),
				Endorsements: record.GetInt("before_endos"),
			},
			After: models.RegionAggregate{
				Population:   record.GetInt("after_pop"),
				WAMembers:    record.GetInt("after_wa"),
				Endorsements: record.GetInt("after_endos"),
			},
			PopulationDelta: record.GetInt("pop_delta"),
			PopulationChange: models.Percent{
				Ratio:   record.GetFloat("pop_pct"),
				Defined: record.GetBool("pop_pct_defined"),
			},
			WADelta: record.GetInt("wa_delta"),
			WAChange: models.Percent{
				Ratio:   record.GetFloat("wa_pct"),
				Defined: record.GetBool("wa_pct_defined"),
			},
		}
		rows[i].EndorsementDelta = rows[i].After.Endorsements - rows[i].Before.Endorsements
	}
	return rows, nil
}

// Close releases the database handles
func (s *ReportStore) Close() error {
	return s.app.ResetBootstrapState()
}
