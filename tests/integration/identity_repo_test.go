package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/identity"
)

// setupTestPostgres opens a test PostgreSQL connection for raw
// assertions. Skips the test if TEST_DB_DSN is not set; you can also
// provide TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER, TEST_DB_PASSWORD
// and TEST_DB_NAME instead.
func setupTestPostgres(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		host := os.Getenv("TEST_DB_HOST")
		port := os.Getenv("TEST_DB_PORT")
		user := os.Getenv("TEST_DB_USER")
		password := os.Getenv("TEST_DB_PASSWORD")
		dbname := os.Getenv("TEST_DB_NAME")

		if host != "" && port != "" && user != "" && dbname != "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host, port, user, password, dbname)
		} else {
			t.Skip("TEST_DB_DSN or TEST_DB_* environment variables not set, skipping PostgreSQL integration test")
		}
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	return db, dsn
}

func setupRepo(t *testing.T, dsn string) *identity.Repo {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := identity.NewRepo(pool)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func testEmail() string {
	return fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
}

func TestUpsertCreatesUserOnFirstLogin(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()

	u, err := repo.Upsert(ctx, "google", identity.Profile{
		Subject: "g-sub-1",
		Email:   email,
		Name:    "First User",
		Picture: "https://lh3.example/p.jpg",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, email, u.Email)
	assert.Equal(t, "First User", u.FullName)
	assert.True(t, u.IsActive)
	assert.NotNil(t, u.LastLoginAt)

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM app_users WHERE email = $1`, email).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsertIsIdempotentPerEmail(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()
	profile := identity.Profile{Subject: "g-sub-2", Email: email, Name: "Repeat User"}

	first, err := repo.Upsert(ctx, "google", profile)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, "google", profile)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.UpdatedAt.After(first.CreatedAt) || second.UpdatedAt.Equal(first.CreatedAt))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM app_users WHERE email = $1`, email).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsertEmptyFieldsDoNotClobberExisting(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()

	_, err := repo.Upsert(ctx, "google", identity.Profile{
		Subject: "g-sub-3",
		Email:   email,
		Name:    "Kept Name",
		Picture: "https://lh3.example/kept.jpg",
	})
	require.NoError(t, err)

	// A later login with a sparse profile must not erase stored values.
	u, err := repo.Upsert(ctx, "google", identity.Profile{
		Subject: "g-sub-3",
		Email:   email,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kept Name", u.FullName)
	assert.Equal(t, "https://lh3.example/kept.jpg", u.PictureURL)
}

func TestUpsertSubjectFilledOnlyWhenPreviouslyEmpty(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()

	first, err := repo.Upsert(ctx, "google", identity.Profile{Subject: "original-sub", Email: email})
	require.NoError(t, err)
	assert.Equal(t, "original-sub", first.ProviderUserID)

	u, err := repo.Upsert(ctx, "google", identity.Profile{Subject: "different-sub", Email: email})
	require.NoError(t, err)
	assert.Equal(t, "original-sub", u.ProviderUserID, "an established subject must not be overwritten")
}

func TestUpsertNormalizesEmailCase(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()
	upper := "IT-Case-" + email

	first, err := repo.Upsert(ctx, "google", identity.Profile{Subject: "g-sub-4", Email: upper})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, "google", identity.Profile{Subject: "g-sub-4", Email: first.Email})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertUpdatesLastLogin(t *testing.T) {
	db, dsn := setupTestPostgres(t)
	defer db.Close()
	repo := setupRepo(t, dsn)

	ctx := context.Background()
	email := testEmail()
	profile := identity.Profile{Subject: "g-sub-5", Email: email}

	first, err := repo.Upsert(ctx, "google", profile)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	second, err := repo.Upsert(ctx, "google", profile)
	require.NoError(t, err)

	require.NotNil(t, first.LastLoginAt)
	require.NotNil(t, second.LastLoginAt)
	assert.True(t, second.LastLoginAt.After(*first.LastLoginAt))
}
