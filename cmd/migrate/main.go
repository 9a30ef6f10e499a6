// Command migrate rewrites a legacy employees.json in place: flat punch
// arrays become date-keyed ledgers, slash dates become DD-MM-YYYY keys, and
// duplicate dates collapse to the first record. The original file is kept as
// a .pre-migration-backup next to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pointage-hq/pointage-backend-go/internal/repository/jsonfile"
)

func main() {
	dataFile := flag.String("file", "employees.json", "path to the employees data file")
	flag.Parse()

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		slog.Error("Cannot read data file", "path", *dataFile, "error", err)
		os.Exit(1)
	}

	backupPath := *dataFile + ".pre-migration-backup"
	if err := os.WriteFile(backupPath, raw, 0o644); err != nil {
		slog.Error("Cannot write backup", "path", backupPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Backup created", "path", backupPath)

	// Opening the store parses the legacy shapes; saving through it writes
	// the canonical date-keyed form back out.
	store, err := jsonfile.NewEmployeeStore(*dataFile)
	if err != nil {
		slog.Error("Cannot parse data file", "path", *dataFile, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	employees, err := store.List(ctx)
	if err != nil {
		slog.Error("Cannot load employees", "error", err)
		os.Exit(1)
	}

	records := 0
	unclosed := 0
	for _, emp := range employees {
		for _, entry := range emp.Ledger {
			records += len(entry.Records())
			if entry.OpenIndex() >= 0 {
				unclosed++
			}
		}
		if err := store.Update(ctx, emp); err != nil {
			slog.Error("Cannot rewrite employee", "employee_id", emp.ID, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Migration completed",
		"employees", len(employees),
		"shift_records", records,
		"unclosed_shifts", unclosed,
	)
	if unclosed > 0 {
		fmt.Printf("%d unclosed shifts need admin review\n", unclosed)
	}
}
