package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestMissingColumn(t *testing.T) {
	tests := []struct {
		name string
		err  error
		col  string
		ok   bool
	}{
		{"postgres insert", &pgconn.PgError{Code: "42703", Message: `column "username_norm" of relation "people" does not exist`}, "username_norm", true},
		{"postgres select", errors.New(`ERROR: column "email_flat" does not exist (SQLSTATE 42703)`), "email_flat", true},
		{"postgres qualified", errors.New(`ERROR: column people.email_norm does not exist`), "email_norm", true},
		{"sqlite insert", errors.New("table people has no column named username_flat"), "username_flat", true},
		{"sqlite select", errors.New("no such column: email_norm"), "email_norm", true},
		{"postgrest", errors.New("Could not find the 'email_flat' column of 'people' in the schema cache"), "email_flat", true},
		{"unrelated", errors.New("duplicate key value violates unique constraint"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := MissingColumn(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.col, col)
		})
	}
}

func addIndexColumns(t *testing.T, db *gorm.DB, cols ...string) {
	t.Helper()
	for _, c := range cols {
		require.NoError(t, db.Exec("ALTER TABLE people ADD COLUMN "+c+" varchar(200)").Error)
	}
}

// countingWrite inserts through the adapter and counts attempts
func countingWrite(t *testing.T, db *gorm.DB, adapter *LoginIndexAdapter, p *identity.Person) (int, error) {
	t.Helper()
	attempts := 0
	base := map[string]any{
		"id":            p.ID,
		"tenant_id":     p.TenantID,
		"name":          p.Name,
		"username":      p.Username,
		"email":         p.Email,
		"role":          string(p.Role),
		"password_hash": "",
		"active":        true,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
	err := adapter.Write(context.Background(), base, p.LoginIndex(), func(ctx context.Context, fields map[string]any) error {
		attempts++
		return db.WithContext(ctx).Table(peopleTable).Create(fields).Error
	})
	return attempts, err
}

func TestLoginIndexAdapter_Write(t *testing.T) {
	t.Run("all columns present writes once", func(t *testing.T) {
		db := newTestDB(t)
		addIndexColumns(t, db, LoginIndexColumns...)
		adapter := NewLoginIndexAdapter(zap.NewNop())

		p := newTestPerson(t, "Ana López", "Ana.Lopez", "ANA@example.com")
		attempts, err := countingWrite(t, db, adapter, p)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)

		var row struct {
			UsernameNorm string
			UsernameFlat string
			EmailNorm    string
			EmailFlat    string
		}
		require.NoError(t, db.Raw("SELECT username_norm, username_flat, email_norm, email_flat FROM people WHERE id = ?", p.ID).Scan(&row).Error)
		assert.Equal(t, "ana.lopez", row.UsernameNorm)
		assert.Equal(t, "analopez", row.UsernameFlat)
		assert.Equal(t, "ana@example.com", row.EmailNorm)
		assert.Equal(t, "anaexamplecom", row.EmailFlat)
	})

	t.Run("some columns absent retries once per missing column", func(t *testing.T) {
		db := newTestDB(t)
		addIndexColumns(t, db, ColUsernameNorm, ColEmailNorm)
		adapter := NewLoginIndexAdapter(zap.NewNop())

		attempts, err := countingWrite(t, db, adapter, newTestPerson(t, "Ana", "ana", "ana@example.com"))
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.True(t, adapter.Supported(ColUsernameNorm))
		assert.True(t, adapter.Supported(ColEmailNorm))
		assert.False(t, adapter.Supported(ColUsernameFlat))
		assert.False(t, adapter.Supported(ColEmailFlat))

		attempts, err = countingWrite(t, db, adapter, newTestPerson(t, "Bea", "bea", "bea@example.com"))
		require.NoError(t, err)
		assert.Equal(t, 1, attempts, "learned columns are not retried")
	})

	t.Run("all columns absent is bounded by the column count", func(t *testing.T) {
		db := newTestDB(t)
		core, logs := observer.New(zap.WarnLevel)
		adapter := NewLoginIndexAdapter(zap.New(core))

		attempts, err := countingWrite(t, db, adapter, newTestPerson(t, "Ana", "ana", ""))
		require.NoError(t, err)
		assert.Equal(t, len(LoginIndexColumns)+1, attempts)
		for _, c := range LoginIndexColumns {
			assert.False(t, adapter.Supported(c))
		}
		assert.Equal(t, len(LoginIndexColumns), logs.FilterMessage("Login index column unavailable, continuing without it").Len())
	})

	t.Run("other errors are returned without retry", func(t *testing.T) {
		adapter := NewLoginIndexAdapter(nil)
		boom := errors.New("connection reset")
		attempts := 0
		err := adapter.Write(context.Background(), map[string]any{}, identity.LoginIndex{}, func(context.Context, map[string]any) error {
			attempts++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
	})

	t.Run("missing column outside the index is returned", func(t *testing.T) {
		adapter := NewLoginIndexAdapter(nil)
		attempts := 0
		err := adapter.Write(context.Background(), map[string]any{}, identity.LoginIndex{}, func(context.Context, map[string]any) error {
			attempts++
			return errors.New("table people has no column named nickname")
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		for _, c := range LoginIndexColumns {
			assert.True(t, adapter.Supported(c))
		}
	})
}

func TestLoginIndexAdapter_Values(t *testing.T) {
	adapter := NewLoginIndexAdapter(nil)
	adapter.MarkUnsupported(ColEmailFlat)

	values := adapter.Values(identity.BuildLoginIndex("Ana", ""))
	assert.Equal(t, "ana", values[ColUsernameNorm])
	assert.Nil(t, values[ColEmailNorm])
	assert.Contains(t, values, ColEmailNorm)
	assert.NotContains(t, values, ColEmailFlat)
}

func TestLoginIndexAdapter_Lookup(t *testing.T) {
	t.Run("no usable columns", func(t *testing.T) {
		adapter := NewLoginIndexAdapter(nil)
		adapter.MarkUnsupported(ColUsernameNorm)
		adapter.MarkUnsupported(ColEmailNorm)

		called := false
		err := adapter.Lookup(context.Background(), []string{ColUsernameNorm, ColEmailNorm}, func(context.Context, []string) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, errNoIndex)
		assert.False(t, called)
	})

	t.Run("drops a rejected column and retries with the rest", func(t *testing.T) {
		adapter := NewLoginIndexAdapter(nil)
		var seen [][]string
		err := adapter.Lookup(context.Background(), []string{ColUsernameNorm, ColEmailNorm}, func(_ context.Context, cols []string) error {
			seen = append(seen, cols)
			if len(cols) == 2 {
				return errors.New("no such column: email_norm")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{ColUsernameNorm, ColEmailNorm}, {ColUsernameNorm}}, seen)
	})
}
