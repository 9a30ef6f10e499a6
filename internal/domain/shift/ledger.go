package shift

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
)

// Shape says how many shifts a date key may hold. It is resolved once per
// employee from the pay policy, never inferred per call.
type Shape int

const (
	// ShapeSingle: at most one shift per day (weekly, monthly, no policy).
	ShapeSingle Shape = iota
	// ShapeMulti: ordered shifts per day (hourly policy).
	ShapeMulti
)

// Entry is the value stored under one date key: either a single record or an
// ordered sequence, depending on the employee's ledger shape. Exactly one of
// the two fields is set.
type Entry struct {
	Single *Record
	Multi  []Record
}

// Records returns the entry's shifts in punch order regardless of shape.
func (e Entry) Records() []Record {
	if e.Multi != nil {
		return e.Multi
	}
	if e.Single != nil {
		return []Record{*e.Single}
	}
	return nil
}

// OpenIndex returns the index of the most recently appended open record, or
// -1. By invariant at most one open record exists per entry.
func (e Entry) OpenIndex() int {
	recs := e.Records()
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].Open() {
			return i
		}
	}
	return -1
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Multi != nil {
		return json.Marshal(e.Multi)
	}
	if e.Single != nil {
		return json.Marshal(e.Single)
	}
	return []byte("null"), nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = Entry{}
		return nil
	}
	if trimmed[0] == '[' {
		var recs []Record
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return err
		}
		*e = Entry{Multi: recs}
		return nil
	}
	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return err
	}
	*e = Entry{Single: &rec}
	return nil
}

// Ledger maps DD-MM-YYYY date keys to the day's shifts.
type Ledger map[string]Entry

// Get returns the entry at key.
func (l Ledger) Get(key string) (Entry, bool) {
	e, ok := l[key]
	return e, ok
}

// Set stores a single-shape record at key. Keys are never duplicated: setting
// an existing key replaces the day's record.
func (l Ledger) Set(key string, rec Record) {
	l[key] = Entry{Single: &rec}
}

// AppendOrCreate adds a record under key with multi-shape semantics, creating
// the sequence on first use. A pre-existing single entry is promoted so that
// ledgers migrated across a pay-policy change keep their history.
func (l Ledger) AppendOrCreate(key string, rec Record) {
	e := l[key]
	if e.Single != nil {
		e.Multi = append([]Record{*e.Single}, rec)
		e.Single = nil
	} else {
		e.Multi = append(e.Multi, rec)
	}
	l[key] = e
}

// Update replaces the record at key/index in place.
func (l Ledger) Update(key string, index int, rec Record) error {
	e, ok := l[key]
	if !ok {
		return fmt.Errorf("no ledger entry at %s", key)
	}
	if e.Multi != nil {
		if index < 0 || index >= len(e.Multi) {
			return fmt.Errorf("ledger entry %s has no record %d", key, index)
		}
		e.Multi[index] = rec
	} else {
		if index != 0 || e.Single == nil {
			return fmt.Errorf("ledger entry %s has no record %d", key, index)
		}
		e.Single = &rec
	}
	l[key] = e
	return nil
}

// Unclosed points at one open record in the ledger.
type Unclosed struct {
	DateKey string
	Index   int
	Record  Record
}

// ListUnclosed returns every open record across all date keys, oldest date
// key first. Keys that fail to parse sort last in lexical order.
func (l Ledger) ListUnclosed() []Unclosed {
	var out []Unclosed
	for key, entry := range l {
		for i, rec := range entry.Records() {
			if rec.Open() {
				out = append(out, Unclosed{DateKey: key, Index: i, Record: rec})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, erri := clock.ParseDateKey(out[i].DateKey)
		dj, errj := clock.ParseDateKey(out[j].DateKey)
		if erri != nil || errj != nil {
			if (erri == nil) != (errj == nil) {
				return erri == nil
			}
			return out[i].DateKey < out[j].DateKey
		}
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Iterate calls fn for every record, in no particular key order. Returning
// false stops the walk.
func (l Ledger) Iterate(fn func(dateKey string, index int, rec Record) bool) {
	for key, entry := range l {
		for i, rec := range entry.Records() {
			if !fn(key, i, rec) {
				return
			}
		}
	}
}

// legacyRecord is the pre-migration flat format: a chronological array with
// the date inside each element, slash separated.
type legacyRecord struct {
	Date        string   `json:"date"`
	CheckIn     string   `json:"entrer"`
	CheckOut    string   `json:"sorti"`
	WorkedHours *float64 `json:"heureTravailer,omitempty"`
	EditedAt    *string  `json:"modifiedOn,omitempty"`
}

// UnmarshalJSON accepts both the date-keyed object shape and the legacy flat
// array, normalizing legacy dates (DD/MM/YYYY) into DD-MM-YYYY keys. On
// duplicate legacy dates the first entry wins, matching the migration tool.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = Ledger{}
		return nil
	}

	if trimmed[0] == '[' {
		var legacy []legacyRecord
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return err
		}
		out := Ledger{}
		for _, lr := range legacy {
			key, err := NormalizeDateKey(lr.Date)
			if err != nil {
				continue // unparseable date, drop rather than fail the load
			}
			if _, exists := out[key]; exists {
				continue
			}
			out.Set(key, Record{
				CheckIn:     lr.CheckIn,
				CheckOut:    lr.CheckOut,
				WorkedHours: lr.WorkedHours,
				EditedAt:    lr.EditedAt,
			})
		}
		*l = out
		return nil
	}

	var m map[string]Entry
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	out := Ledger{}
	for key, entry := range m {
		norm, err := NormalizeDateKey(key)
		if err != nil {
			norm = key
		}
		out[norm] = entry
	}
	*l = out
	return nil
}

// NormalizeDateKey converts historical date spellings (D/M/YYYY, DD/MM/YYYY,
// DD-MM-YYYY) to the canonical zero-padded DD-MM-YYYY key.
func NormalizeDateKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q", s)
	}
	var day, month, year int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1]+" "+parts[2], "%d %d %d", &day, &month, &year); err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	key := fmt.Sprintf("%02d-%02d-%04d", day, month, year)
	if _, err := clock.ParseDateKey(key); err != nil {
		return "", err
	}
	return key, nil
}
