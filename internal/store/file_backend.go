package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []AnalyzedPackage
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			rec := normalizeRecord(row)
			if rec.PackageName == "" {
				continue
			}
			s.rows = append(s.rows, rec)
			if rec.ID >= s.nextID {
				s.nextID = rec.ID + 1
			}
		}
	})
}

func (s *Store) saveFileLocked() {
	b, err := json.MarshalIndent(s.rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) insertFile(rec AnalyzedPackage) AnalyzedPackage {
	s.ensureLoadedFile()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, rec)
	s.saveFileLocked()
	return rec
}

func (s *Store) listByNameFile(name string) []AnalyzedPackage {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AnalyzedPackage
	for _, rec := range s.rows {
		if rec.PackageName == name {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) deleteByNameFile(name string) int {
	s.ensureLoadedFile()
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	removed := 0
	for _, rec := range s.rows {
		if rec.PackageName == name {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.rows = kept
	if removed > 0 {
		s.saveFileLocked()
	}
	return removed
}
