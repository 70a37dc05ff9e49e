package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

var _ CredentialStore = (*PGStore)(nil)

// PGStore implements CredentialStore on PostgreSQL. Reads only; account
// management is out of scope and handled elsewhere.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Lookup(ctx context.Context, username string) (StoredCredential, error) {
	row := s.db.QueryRowContext(ctx,
		`select username, display_name, email, active, password_hash
		   from identities where username = $1`, username)

	var cred StoredCredential
	if err := row.Scan(&cred.Username, &cred.DisplayName, &cred.Email, &cred.Active, &cred.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return StoredCredential{}, ErrNotFound
		}
		return StoredCredential{}, fmt.Errorf("lookup identity: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`select permission_id from identity_permissions where username = $1`, username)
	if err != nil {
		return StoredCredential{}, fmt.Errorf("load permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return StoredCredential{}, fmt.Errorf("scan permission: %w", err)
		}
		cred.Permissions = append(cred.Permissions, id)
	}
	if err := rows.Err(); err != nil {
		return StoredCredential{}, fmt.Errorf("load permissions: %w", err)
	}
	return cred, nil
}

func (s *PGStore) Permissions(ctx context.Context) ([]Permission, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, key from permissions order by key asc`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Key); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return perms, nil
}
