package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/blindquote/pkg/logger"
)

type draftRow struct {
	ID     int
	Number string `gorm:"uniqueIndex"`
}

func newTestClient(t *testing.T, logg *logger.Logger, slow time.Duration) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "db.sqlite")), &gorm.Config{
		Logger:                 newQueryLogger(logg, slow),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&draftRow{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	client := NewFromGorm(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func countRows(t *testing.T, c *Client) int64 {
	t.Helper()
	var n int64
	if err := c.DB().Model(&draftRow{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, logger.Nop(), 0)
	ctx := context.Background()

	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&draftRow{Number: "RB-1"}).Error
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&draftRow{Number: "RB-2"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return the callback error")
	}
	if got := countRows(t, client); got != 1 {
		t.Fatalf("expected rollback to leave 1 row, got %d", got)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()
	if err := newTestClient(t, logger.Nop(), 0).Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "quotes_quote_number_key"}

	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"postgres any", fmt.Errorf("insert: %w", pgErr), "", true},
		{"postgres named", pgErr, "quotes_quote_number_key", true},
		{"postgres other constraint", pgErr, "quotes_pkey", false},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, "", false},
		{"sqlite any", errors.New("UNIQUE constraint failed: quotes.quote_number"), "", true},
		{"sqlite column", errors.New("UNIQUE constraint failed: quotes.quote_number"), "quotes.quote_number", true},
		{"unrelated", errors.New("connection refused"), "", false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestUniqueViolationFromSQLite(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, logger.Nop(), 0)
	if err := client.DB().Create(&draftRow{Number: "RB-1"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := client.DB().Create(&draftRow{Number: "RB-1"}).Error
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestQueryLoggerReportsFailures(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	client := newTestClient(t, logger.New(logger.Options{ServiceName: "test", Output: &buf}), 0)
	buf.Reset()

	_ = client.DB().Create(&draftRow{Number: "RB-1"}).Error
	if buf.Len() != 0 {
		t.Fatalf("successful queries should not log, got %s", buf.String())
	}
	_ = client.DB().Create(&draftRow{Number: "RB-1"}).Error
	if !strings.Contains(buf.String(), "db.query_failed") {
		t.Fatalf("expected failed query log, got %s", buf.String())
	}

	buf.Reset()
	var row draftRow
	_ = client.DB().Where("number = ?", "missing").First(&row).Error
	if buf.Len() != 0 {
		t.Fatalf("record not found should not log, got %s", buf.String())
	}
}

func TestQueryLoggerReportsSlowQueries(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ql := newQueryLogger(logger.New(logger.Options{ServiceName: "test", Output: &buf}), time.Millisecond)

	ql.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	if !strings.Contains(buf.String(), "db.slow_query") || !strings.Contains(buf.String(), "SELECT 1") {
		t.Fatalf("expected slow query log, got %s", buf.String())
	}
}
