package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvillalba/verduleria-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestDeliveryMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_delivery.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no delivery migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE conjuntos",
		"numero_conjunto BIGINT NOT NULL UNIQUE",
		"CREATE TABLE orders",
		"confirmation_code TEXT NOT NULL UNIQUE",
		"conjunto_id       BIGINT NOT NULL",
		"DROP TABLE conjuntos",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// Finalization deletes conjuntos while orders keep referencing them, so
	// orders.conjunto_id must never carry a foreign key.
	if strings.Contains(content, "REFERENCES conjuntos") {
		t.Error("orders.conjunto_id must not reference conjuntos")
	}
}

func TestProcessedPaymentsMigrationUsesPaymentIDKey(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_processed_payments.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no processed payments migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	if !strings.Contains(string(data), "payment_id TEXT PRIMARY KEY") {
		t.Error("processed_payments must be keyed by payment_id")
	}
}
