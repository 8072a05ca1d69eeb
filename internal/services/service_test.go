package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/testutil"
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

const testTenant = "acme"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		ReportsPerPage: 6,
		ItemsPerPage:   10,
		AdminEmails:    "boss@example.com",
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := testutil.NewMockDB(t)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
	})
	return db, mock
}
