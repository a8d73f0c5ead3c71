package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	hosts INTEGER NOT NULL,
	failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS vlans (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	hostname TEXT NOT NULL,
	vlan_id TEXT NOT NULL,
	name TEXT NOT NULL,
	subnet TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS failures (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	hostname TEXT NOT NULL,
	reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vlans_run ON vlans(run_id, position);
CREATE INDEX IF NOT EXISTS idx_vlans_hostname ON vlans(hostname);
`

// SQLiteSink appends each report to a SQLite database as a new run, so
// earlier snapshots stay queryable
type SQLiteSink struct {
	path string
	now  func() time.Time
}

func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path, now: time.Now}
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteSink) Write(report entities.Report) error {
	db, err := openDB(s.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (started_at, hosts, failed) VALUES (?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339), len(report.Hosts), len(report.Failures))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	insertVlan, err := tx.Prepare(`INSERT INTO vlans (run_id, position, hostname, vlan_id, name, subnet) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertVlan.Close()
	for i, rec := range report.Records {
		if _, err := insertVlan.Exec(runID, i, rec.Host, rec.VlanID, rec.Name, rec.Subnet); err != nil {
			return fmt.Errorf("failed to store VLAN %s of %s: %w", rec.VlanID, rec.Host, err)
		}
	}

	for _, failure := range report.Failures {
		if _, err := tx.Exec(`INSERT INTO failures (run_id, hostname, reason) VALUES (?, ?, ?)`,
			runID, failure.Host, failure.Reason); err != nil {
			return fmt.Errorf("failed to store failure of %s: %w", failure.Host, err)
		}
	}
	return tx.Commit()
}

// LatestRun returns the records of the most recent run stored at path
func LatestRun(path string) ([]entities.VlanRecord, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT hostname, vlan_id, name, subnet FROM vlans
		WHERE run_id = (SELECT MAX(id) FROM runs)
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.VlanRecord
	for rows.Next() {
		var rec entities.VlanRecord
		if err := rows.Scan(&rec.Host, &rec.VlanID, &rec.Name, &rec.Subnet); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
