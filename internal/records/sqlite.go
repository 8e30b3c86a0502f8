package records

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // database/sql driver "sqlite3"
)

// OpenSQLite opens (creating if needed) the sqlite database file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

// WriteSQLite stores set in db, one table per record kind, replacing any
// tables of the same names. All inserts happen within a single transaction.
func WriteSQLite(db *sql.DB, set *Set) (rerr error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if rerr != nil {
			tx.Rollback()
		}
	}()
	for _, k := range kinds {
		if err := insertKind(tx, k, set); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return tx.Commit()
}

func insertKind(tx *sql.Tx, k kind, set *Set) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + k.name); err != nil {
		return err
	}
	if _, err := tx.Exec(`CREATE TABLE ` + k.name + `(` + strings.Join(k.columns, ", ") + `)`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s(%s) VALUES (%s)`,
		k.name,
		strings.Join(columnNames(k), ", "),
		strings.TrimSuffix(strings.Repeat("?,", len(k.columns)), ","),
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	var r row
	args := make([]interface{}, len(k.columns))
	for i, n := 0, k.len(set); i < n; i++ {
		r = r[:0]
		k.encode(set, i, &r)
		for j, v := range r {
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

// ReadSQLite loads a record set stored by WriteSQLite.
func ReadSQLite(db *sql.DB) (*Set, error) {
	set := &Set{}
	for _, k := range kinds {
		if err := selectKind(db, k, set); err != nil {
			return nil, fmt.Errorf("%s: %w", k.name, err)
		}
	}
	set.sort()
	return set, nil
}

func selectKind(db *sql.DB, k kind, set *Set) error {
	rows, err := db.Query(`SELECT ` + strings.Join(columnNames(k), ", ") + ` FROM ` + k.name)
	if err != nil {
		return err
	}
	defer rows.Close()

	rec := make([]string, len(k.columns))
	dest := make([]interface{}, len(rec))
	for i := range rec {
		dest[i] = &rec[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		fs := fields{f: rec}
		k.decode(set, &fs)
		if fs.err != nil {
			return fs.err
		}
	}
	return rows.Err()
}

func columnNames(k kind) []string {
	names := make([]string, len(k.columns))
	for i, col := range k.columns {
		names[i] = strings.Fields(col)[0]
	}
	return names
}
