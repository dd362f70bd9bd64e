package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store keeps analyzed-package records. The default backend is a JSON file;
// a Postgres backend (pgx stdlib driver) takes over when a DSN is set. An
// LRU cache fronts name lookups on the database backend.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	rows     []AnalyzedPackage
	nextID   int64

	schemaOnce sync.Once
	schemaErr  error

	nameCache *lru.Cache[string, []AnalyzedPackage]
}

func New(path string) *Store {
	return &Store{path: path, nextID: 1}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, []AnalyzedPackage](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, nameCache: cache}, nil
}

// NewFromEnv prefers Postgres when PKGCHECK_STORE_PG_DSN is set, falling
// back to the file backend at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("PKGCHECK_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert appends one record and returns it with its assigned id.
func (s *Store) Insert(rec AnalyzedPackage) (AnalyzedPackage, error) {
	n := normalizeRecord(rec)
	if n.PackageName == "" {
		return AnalyzedPackage{}, fmt.Errorf("store: package name is empty")
	}
	if s.db != nil {
		saved, err := s.insertDB(n)
		if err == nil && s.nameCache != nil {
			s.nameCache.Remove(n.PackageName)
		}
		return saved, err
	}
	return s.insertFile(n), nil
}

// ListByName returns every record for a package name, oldest first.
func (s *Store) ListByName(packageName string) ([]AnalyzedPackage, error) {
	name := strings.TrimSpace(packageName)
	if name == "" {
		return nil, nil
	}
	if s.db != nil {
		if s.nameCache != nil {
			if cached, ok := s.nameCache.Get(name); ok {
				return cached, nil
			}
		}
		rows, err := s.listByNameDB(name)
		if err != nil {
			return nil, err
		}
		if s.nameCache != nil {
			s.nameCache.Add(name, rows)
		}
		return rows, nil
	}
	return s.listByNameFile(name), nil
}

// Lookup returns the newest record for a package name. Uniqueness is not
// enforced on insert, so reads are most-recent-wins.
func (s *Store) Lookup(packageName string) (AnalyzedPackage, bool) {
	rows, err := s.ListByName(packageName)
	if err != nil || len(rows) == 0 {
		return AnalyzedPackage{}, false
	}
	newest := rows[0]
	for _, rec := range rows[1:] {
		if rec.LastChecked.After(newest.LastChecked) ||
			(rec.LastChecked.Equal(newest.LastChecked) && rec.ID > newest.ID) {
			newest = rec
		}
	}
	return newest, true
}

// DeleteByName removes every record for a package name and reports how many
// went away.
func (s *Store) DeleteByName(packageName string) (int, error) {
	name := strings.TrimSpace(packageName)
	if name == "" {
		return 0, nil
	}
	if s.db != nil {
		count, err := s.deleteByNameDB(name)
		if err == nil && s.nameCache != nil {
			s.nameCache.Remove(name)
		}
		return count, err
	}
	return s.deleteByNameFile(name), nil
}
