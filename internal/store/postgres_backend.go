package store

import (
	"database/sql"
	"encoding/json"

	"pkgcheck/internal/analysis"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS analyzed_packages (
  id SERIAL PRIMARY KEY,
  package_name TEXT NOT NULL,
  summary JSONB NOT NULL,
  report TEXT NOT NULL,
  last_checked TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_analyzed_packages_package_name ON analyzed_packages (package_name);
CREATE INDEX IF NOT EXISTS idx_analyzed_packages_last_checked ON analyzed_packages (last_checked);
`)
	})
	return s.schemaErr
}

func (s *Store) insertDB(rec AnalyzedPackage) (AnalyzedPackage, error) {
	if err := s.ensureSchema(); err != nil {
		return AnalyzedPackage{}, err
	}
	summaryJSON, err := json.Marshal(rec.Summary)
	if err != nil {
		return AnalyzedPackage{}, err
	}
	row := s.db.QueryRow(`
INSERT INTO analyzed_packages (package_name, summary, report, last_checked)
VALUES ($1, $2, $3, $4)
RETURNING id`, rec.PackageName, summaryJSON, rec.Report, rec.LastChecked)
	if err := row.Scan(&rec.ID); err != nil {
		return AnalyzedPackage{}, err
	}
	return rec, nil
}

func (s *Store) listByNameDB(name string) ([]AnalyzedPackage, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
SELECT id, package_name, summary, report, last_checked
FROM analyzed_packages WHERE package_name = $1
ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalyzedPackage
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) deleteByNameDB(name string) (int, error) {
	if err := s.ensureSchema(); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`DELETE FROM analyzed_packages WHERE package_name = $1`, name)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func scanRecord(rows *sql.Rows) (AnalyzedPackage, error) {
	var rec AnalyzedPackage
	var summaryJSON []byte
	if err := rows.Scan(&rec.ID, &rec.PackageName, &summaryJSON, &rec.Report, &rec.LastChecked); err != nil {
		return AnalyzedPackage{}, err
	}
	var summary analysis.Summary
	if err := json.Unmarshal(summaryJSON, &summary); err != nil {
		return AnalyzedPackage{}, err
	}
	rec.Summary = summary
	return rec, nil
}
