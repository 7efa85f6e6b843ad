package identity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const schema = `
create table if not exists app_users (
    id               bigserial primary key,
    auth_provider    text        not null default 'google',
    provider_user_id text        not null,
    email            text        not null unique,
    full_name        text,
    picture_url      text,
    is_active        boolean     not null default true,
    created_at       timestamptz not null default now(),
    updated_at       timestamptz not null default now(),
    last_login_at    timestamptz,
    constraint uq_app_users_provider unique (auth_provider, provider_user_id)
);
`

// EnsureSchema creates the users table on startup when it does not
// exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Upsert reconciles a provider profile into the user table, keyed by
// email. New rows get current timestamps; existing rows only have their
// name and picture overwritten when the incoming value is non-empty, and
// the provider subject is filled in only when it was previously empty.
// Safe to call on every login.
func (r *Repo) Upsert(ctx context.Context, provider string, p Profile) (*AppUser, error) {
	p, err := NormalizeProfile(p)
	if err != nil {
		return nil, err
	}

	const q = `
insert into app_users (auth_provider, provider_user_id, email, full_name, picture_url, last_login_at)
values ($1, $2, $3, nullif($4,''), nullif($5,''), now())
on conflict (email) do update
set
  full_name        = coalesce(nullif(excluded.full_name, ''), app_users.full_name),
  picture_url      = coalesce(nullif(excluded.picture_url, ''), app_users.picture_url),
  provider_user_id = coalesce(nullif(app_users.provider_user_id, ''), excluded.provider_user_id),
  updated_at       = now(),
  last_login_at    = now()
returning id, auth_provider, provider_user_id, email,
          coalesce(full_name, ''), coalesce(picture_url, ''),
          is_active, created_at, updated_at, last_login_at;
`
	var u AppUser
	err = r.db.QueryRow(ctx, q, provider, p.Subject, p.Email, p.Name, p.Picture).Scan(
		&u.ID, &u.AuthProvider, &u.ProviderUserID, &u.Email,
		&u.FullName, &u.PictureURL,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}
