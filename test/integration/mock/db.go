package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	dbOnce sync.Once
	shared *Db
)

// Db is the in-memory SQLite store shared by every scenario. Tables are
// migrated once and emptied between scenarios by ClearDB.
type Db struct {
	DbConn *gorm.DB
	name   string
	models map[string]any
}

// NewDb returns the shared store, migrating models on first use. models is
// keyed by table name, see TablesFor.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		d, err := open(name, models)
		if err != nil {
			panic(fmt.Sprintf("mock db %s: %s", name, err))
		}
		shared = d
	})
	return shared
}

func open(name string, models map[string]any) (*Db, error) {
	// One connection, otherwise every pooled conn would see its own empty
	// :memory: database.
	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	d := &Db{DbConn: gdb, name: name, models: models}
	if err := gdb.AutoMigrate(d.modelList()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	for table, m := range models {
		if !gdb.Migrator().HasTable(m) {
			return nil, fmt.Errorf("table %s was not created", table)
		}
	}
	return d, nil
}

// ClearDB deletes every row, leaving the schema in place.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
			return err
		}
		for _, table := range d.tables() {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

func (d *Db) tables() []string {
	names := make([]string, 0, len(d.models))
	for table := range d.models {
		names = append(names, table)
	}
	sort.Strings(names)
	return names
}

func (d *Db) modelList() []any {
	list := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		list = append(list, d.models[table])
	}
	return list
}

// TablesFor keys each model by its table name.
func TablesFor(models ...any) map[string]any {
	cache := &sync.Map{}
	tables := make(map[string]any, len(models))
	for _, m := range models {
		s, err := schema.Parse(m, cache, schema.NamingStrategy{})
		if err != nil {
			panic(fmt.Sprintf("parse model %T: %s", m, err))
		}
		tables[s.Table] = m
	}
	return tables
}
