package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT,
		name TEXT,
		password_hash TEXT,
		role TEXT,
		phone TEXT,
		image_url TEXT,
		address TEXT,
		pincode TEXT,
		date_of_birth TEXT,
		gender TEXT,
		language_preference TEXT,
		bio TEXT,
		social_handle TEXT,
		is_active BOOLEAN,
		is_email_verified BOOLEAN,
		email_verified_at DATETIME,
		last_login DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createOTPTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otps (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		code TEXT NOT NULL,
		created_at DATETIME,
		expires_at DATETIME NOT NULL,
		is_used BOOLEAN NOT NULL,
		used_at DATETIME,
		purpose TEXT NOT NULL
	);`)
}
