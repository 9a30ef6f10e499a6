package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
)

func init() {
	// payAmount is stored as a bare JSON number in the historical data files
	decimal.MarshalJSONWithoutQuotes = true
}

// document is the on-disk layout of the data file.
type document struct {
	Employees []employee.Employee `json:"employees"`
}

// EmployeeStore persists employees in a single JSON file. Every operation
// reads the file fresh and writes through a temp file plus rename, so a crash
// mid-write can never leave a torn document behind. A store-wide mutex keeps
// each read-modify-write cycle atomic, since every write replaces the whole
// document.
type EmployeeStore struct {
	mu   sync.Mutex
	path string
}

func NewEmployeeStore(path string) (*EmployeeStore, error) {
	store := &EmployeeStore{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := store.save(document{Employees: []employee.Employee{}}); err != nil {
			return nil, fmt.Errorf("failed to create data file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}

	// Fail fast on an unreadable document.
	if _, err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *EmployeeStore) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return document{}, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("failed to parse data file: %w", err)
	}
	if doc.Employees == nil {
		doc.Employees = []employee.Employee{}
	}
	return doc, nil
}

func (s *EmployeeStore) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".employees-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (s *EmployeeStore) List(ctx context.Context) ([]employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Employees, nil
}

func (s *EmployeeStore) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return employee.Employee{}, err
	}
	for _, emp := range doc.Employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *EmployeeStore) Create(ctx context.Context, emp employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.Employees {
		if existing.ID == emp.ID {
			return employee.ErrEmployeeIDExists
		}
	}
	doc.Employees = append(doc.Employees, emp)
	return s.save(doc)
}

func (s *EmployeeStore) Update(ctx context.Context, emp employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range doc.Employees {
		if existing.ID == emp.ID {
			doc.Employees[i] = emp
			return s.save(doc)
		}
	}
	return employee.ErrEmployeeNotFound
}

func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range doc.Employees {
		if existing.ID == id {
			doc.Employees = append(doc.Employees[:i], doc.Employees[i+1:]...)
			return s.save(doc)
		}
	}
	return employee.ErrEmployeeNotFound
}
