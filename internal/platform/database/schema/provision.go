// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table, column and enumerated type the API
// stores, and provisions them on demand.
//
// # Lazy Provisioning
//
// Nothing is created at startup. Each repository calls [Provisioner.Ensure]
// at the top of its write path; Ensure issues "create if absent" DDL for the
// entity and everything it depends on. Repeated and concurrent calls are
// no-ops once the objects exist.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/artistry/internal/platform/dberr"
)

// Kind identifies an entity whose storage can be provisioned.
type Kind string

const (
	KindAdmin  Kind = "admin"
	KindUser   Kind = "users"
	KindArtist Kind = "artists"
	KindSong   Kind = "songs"
)

// Execer is the single method the provisioner needs from the database.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// statement is one named, idempotent DDL step.
type statement struct {
	name string
	sql  string
}

// Provisioner creates entity tables and enum types if they are absent.
//
// # Concurrency
//
// Safe for concurrent use. Two requests racing to create the same object can
// still collide inside the PostgreSQL catalog; the loser's duplicate error is
// treated as success. Statements run in autocommit mode, outside any caller
// transaction, so a lost race never aborts the caller's unit of work.
type Provisioner struct {
	db Execer
}

// NewProvisioner returns a Provisioner issuing DDL through db.
func NewProvisioner(db Execer) *Provisioner {
	return &Provisioner{db: db}
}

// Ensure makes sure the storage for kind, and every type or table it
// references, exists. It returns an error only when the backend fails for a
// reason other than the object already existing.
func (p *Provisioner) Ensure(ctx context.Context, kind Kind) error {
	steps, err := plan(kind)
	if err != nil {
		return err
	}

	for _, step := range steps {
		if _, err := p.db.Exec(ctx, step.sql); err != nil {
			if dberr.IsDuplicateDefinition(err) {
				continue
			}
			return fmt.Errorf("schema: ensure %s (%s): %w", kind, step.name, err)
		}
	}

	return nil
}

// plan returns the ordered DDL needed before kind can be written.
func plan(kind Kind) ([]statement, error) {
	switch kind {
	case KindAdmin:
		return []statement{enumDDL(Gender), accountDDL(Admin)}, nil
	case KindUser:
		return []statement{enumDDL(Gender), accountDDL(Users)}, nil
	case KindArtist:
		return []statement{enumDDL(Gender), artistDDL()}, nil
	case KindSong:
		return []statement{enumDDL(Gender), artistDDL(), enumDDL(Genre), songDDL()}, nil
	}
	return nil, fmt.Errorf("schema: unknown entity kind %q", kind)
}

// # DDL

func enumDDL(enum EnumType) statement {
	quoted := make([]string, len(enum.Values))
	for i, value := range enum.Values {
		quoted[i] = "'" + value + "'"
	}

	return statement{
		name: "type " + enum.Name,
		sql: fmt.Sprintf(`
			DO $$
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = '%s') THEN
					CREATE TYPE %s AS ENUM (%s);
				END IF;
			END $$;`,
			enum.Name, enum.Name, strings.Join(quoted, ", "),
		),
	}
}

func accountDDL(t AccountTable) statement {
	return statement{
		name: "table " + t.Table,
		sql: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s SERIAL PRIMARY KEY,
				%s VARCHAR(255) NOT NULL,
				%s VARCHAR(255) NOT NULL,
				%s VARCHAR(255) UNIQUE NOT NULL,
				%s VARCHAR(500) NOT NULL,
				%s VARCHAR(20) NOT NULL,
				%s DATE NOT NULL,
				%s %s NOT NULL,
				%s VARCHAR(255) NOT NULL,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);`,
			t.Table, t.ID, t.FirstName, t.LastName, t.Email, t.Password, t.Phone,
			t.DOB, t.Gender, Gender.Name, t.Address, t.CreatedAt, t.UpdatedAt,
		),
	}
}

func artistDDL() statement {
	t := Artists
	return statement{
		name: "table " + t.Table,
		sql: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s SERIAL PRIMARY KEY,
				%s VARCHAR(255) NOT NULL,
				%s DATE NOT NULL,
				%s %s NOT NULL,
				%s VARCHAR(255) NOT NULL,
				%s INTEGER NOT NULL,
				%s INTEGER NOT NULL,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);`,
			t.Table, t.ID, t.Name, t.DOB, t.Gender, Gender.Name, t.Address,
			t.FirstReleaseYear, t.NoOfAlbumsReleased, t.CreatedAt, t.UpdatedAt,
		),
	}
}

// songDDL declares the cascade so deleting an artist removes its songs in
// the same statement.
func songDDL() statement {
	t := Songs
	return statement{
		name: "table " + t.Table,
		sql: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				%s SERIAL PRIMARY KEY,
				%s VARCHAR(255) NOT NULL,
				%s VARCHAR(255) NOT NULL,
				%s %s NOT NULL,
				%s INTEGER NOT NULL REFERENCES %s(%s) ON DELETE CASCADE,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				%s TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);`,
			t.Table, t.ID, t.Title, t.AlbumName, t.Genre, Genre.Name,
			t.ArtistID, Artists.Table, Artists.ID, t.CreatedAt, t.UpdatedAt,
		),
	}
}
