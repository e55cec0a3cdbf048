// Package migrations applies the embedded schema files for both backends.
// Migrations are expected to be idempotent and are applied in lexical order.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"token-mention-bot/internal/storage/clickhouse"
	"token-mention-bot/internal/storage/postgres"
)

// RunPostgres applies all embedded PostgreSQL migrations.
func RunPostgres(ctx context.Context, pool *postgres.Pool) error {
	return apply(PostgresFS, "postgres", func(stmt string) error {
		_, err := pool.Exec(ctx, stmt)
		return err
	})
}

// RunClickhouse applies all embedded ClickHouse migrations.
func RunClickhouse(ctx context.Context, conn *clickhouse.Conn) error {
	return apply(ClickhouseFS, "clickhouse", func(stmt string) error {
		return conn.Exec(ctx, stmt)
	})
}

// apply executes every .sql file under dir in lexical order.
func apply(fsys embed.FS, dir string, exec func(string) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read embedded %s migrations: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := fs.ReadFile(fsys, dir+"/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		stmt := strings.TrimSpace(string(data))
		if stmt == "" {
			continue
		}
		if err := exec(stmt); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
