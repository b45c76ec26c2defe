package gorm

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("db.internal", "5432", "relay", "pw", "relay", false)
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("expected sslmode=disable, got %s", dsn)
	}
	if !strings.Contains(dsn, "host=db.internal") || !strings.Contains(dsn, "dbname=relay") {
		t.Errorf("unexpected dsn %s", dsn)
	}

	dsn = DSN("db.internal", "5432", "relay", "pw", "relay", true)
	if !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("expected sslmode=require, got %s", dsn)
	}
}

func TestConnectToPostgreSQLRequiresTarget(t *testing.T) {
	if _, err := ConnectToPostgreSQL("", "", "u", "p", "", false); err == nil {
		t.Error("expected error without host, port and database")
	}
}
