package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/optimscale/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ArchiveName is the default file name of the snapshot archive.
const ArchiveName = "optimscale_snapshots.db"

// Archive is a SQLite file that accumulates dashboard snapshots.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the snapshot database at dbPath.
func OpenArchive(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save stores snap and returns its snapshot id.
func (a *Archive) Save(snap Snapshot) (int64, error) {
	tx, err := a.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO snapshots (taken_at, range_start, range_end) VALUES (?, ?, ?)`,
		snap.TakenAt.UTC().Format(time.RFC3339), snap.RangeStart, snap.RangeEnd)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, c := range snap.Charts {
		var formula any
		var r2 any
		if c.Fitted {
			formula, r2 = c.Model.String(), c.RSquared
		}
		_, err = tx.Exec(`INSERT INTO charts
			(snapshot_id, metric, title, unit, variant, degree, formula, r_squared)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, c.Spec.Key, c.Spec.Title, string(c.Spec.Unit), c.Variant, c.Spec.Degree, formula, r2,
		)
		if err != nil {
			return 0, err
		}

		combined := append(append([]model.Point{}, c.Historical...), c.Predicted...)
		for pos, p := range combined {
			predicted := 0
			if pos >= len(c.Historical) {
				predicted = 1
			}
			_, err = tx.Exec(`INSERT INTO points
				(snapshot_id, metric, position, period, value, predicted)
				VALUES (?, ?, ?, ?, ?, ?)`,
				id, c.Spec.Key, pos, p.Period, p.Value, predicted,
			)
			if err != nil {
				return 0, err
			}
		}

		for _, ann := range c.Annotations {
			_, err = tx.Exec(`INSERT INTO annotations
				(id, snapshot_id, metric, period, note, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				ann.ID, id, c.Spec.Key, ann.Period, ann.Note, ann.CreatedAt.UTC().Format(time.RFC3339),
			)
			if err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// SnapshotCount returns how many snapshots the archive holds.
func (a *Archive) SnapshotCount() (int, error) {
	var n int
	err := a.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n)
	return n, err
}

// WriteSQLite appends snap to the archive at path.
func WriteSQLite(path string, snap Snapshot) (int64, error) {
	a, err := OpenArchive(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = a.Close() }()

	id, err := a.Save(snap)
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}
	return id, nil
}
