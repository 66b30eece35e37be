package oracle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const relationsSchema = `CREATE TABLE IF NOT EXISTS relations (
	word    TEXT NOT NULL,
	related TEXT NOT NULL,
	weight  REAL NOT NULL DEFAULT 1,
	PRIMARY KEY (word, related)
)`

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, relationsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating relations table: %w", err)
	}
	return db, nil
}

// LoadThesaurusDB reads a thesaurus from the relations table of a SQLite
// database.
func LoadThesaurusDB(ctx context.Context, path string) (*Thesaurus, error) {
	db, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT word, related, weight FROM relations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := NewThesaurus()
	n := 0
	for rows.Next() {
		var a, b string
		var w float64
		if err := rows.Scan(&a, &b, &w); err != nil {
			return nil, err
		}
		t.Add(a, b, w)
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("relations", n).Int("headwords", t.Len()).
		Msg("loaded-thesaurus-db")
	return t, nil
}

// SaveThesaurusDB writes every link of t into the relations table at path,
// replacing links that are already there.
func SaveThesaurusDB(ctx context.Context, path string, t *Thesaurus) error {
	db, err := openDB(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO relations (word, related, weight) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, e := range t.Edges() {
		if _, err := stmt.ExecContext(ctx, e.A, e.B, e.Weight); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
