package persistence

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sync"

	"github.com/atlas/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// Optional normalized-login columns on people. They are added by a separate
// migration, so any of them may be missing in a given deployment.
const (
	ColUsernameNorm = "username_norm"
	ColUsernameFlat = "username_flat"
	ColEmailNorm    = "email_norm"
	ColEmailFlat    = "email_flat"
)

// LoginIndexColumns lists the optional columns in write order.
var LoginIndexColumns = []string{ColUsernameNorm, ColUsernameFlat, ColEmailNorm, ColEmailFlat}

var missingColumnPatterns = []*regexp.Regexp{
	// postgres 42703, with or without the relation
	regexp.MustCompile(`column "?(?:[\w]+\.)?(\w+)"? (?:of relation "[^"]+" )?does not exist`),
	// sqlite insert
	regexp.MustCompile(`has no column named (\w+)`),
	// sqlite select/update
	regexp.MustCompile(`no such column: (?:\w+\.)?(\w+)`),
	// PostgREST schema cache (PGRST204)
	regexp.MustCompile(`Could not find the '(\w+)' column`),
}

// MissingColumn extracts the column name from a "column does not exist"
// error raised by Postgres, SQLite or PostgREST.
func MissingColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	for _, re := range missingColumnPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// LoginIndexAdapter remembers which optional login columns the store
// rejected. The cache lives for the process and is never persisted.
type LoginIndexAdapter struct {
	mu          sync.Mutex
	unsupported map[string]bool
	log         *zap.Logger
}

// NewLoginIndexAdapter creates an adapter that assumes every column exists.
func NewLoginIndexAdapter(log *zap.Logger) *LoginIndexAdapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoginIndexAdapter{unsupported: make(map[string]bool), log: log}
}

// Supported reports whether col is still believed to exist.
func (a *LoginIndexAdapter) Supported(col string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.unsupported[col]
}

// MarkUnsupported records that col does not exist.
func (a *LoginIndexAdapter) MarkUnsupported(col string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.unsupported[col] {
		a.unsupported[col] = true
		a.log.Warn("Login index column unavailable, continuing without it", zap.String("column", col))
	}
}

// Values returns the index values for every column still believed to exist.
func (a *LoginIndexAdapter) Values(idx identity.LoginIndex) map[string]any {
	all := map[string]string{
		ColUsernameNorm: idx.UsernameNorm,
		ColUsernameFlat: idx.UsernameFlat,
		ColEmailNorm:    idx.EmailNorm,
		ColEmailFlat:    idx.EmailFlat,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]any, len(all))
	for col, v := range all {
		if a.unsupported[col] {
			continue
		}
		if v == "" {
			out[col] = nil
		} else {
			out[col] = v
		}
	}
	return out
}

// Write calls write with the base fields plus every supported index column.
// When the store rejects one of those columns it is dropped and the write is
// retried, at most once per column.
func (a *LoginIndexAdapter) Write(ctx context.Context, base map[string]any, idx identity.LoginIndex, write func(ctx context.Context, fields map[string]any) error) error {
	var err error
	for attempt := 0; attempt <= len(LoginIndexColumns); attempt++ {
		fields := make(map[string]any, len(base)+len(LoginIndexColumns))
		for k, v := range base {
			fields[k] = v
		}
		extra := a.Values(idx)
		for k, v := range extra {
			fields[k] = v
		}

		err = write(ctx, fields)
		if err == nil {
			return nil
		}

		col, ok := MissingColumn(err)
		if !ok {
			return err
		}
		if _, included := extra[col]; !included {
			return err
		}
		a.MarkUnsupported(col)
	}
	return err
}

// Lookup runs find against each supported column, dropping columns the store
// rejects. It returns errNoIndex when no supported column is left.
func (a *LoginIndexAdapter) Lookup(ctx context.Context, cols []string, find func(ctx context.Context, cols []string) error) error {
	for attempt := 0; attempt <= len(cols); attempt++ {
		var usable []string
		for _, c := range cols {
			if a.Supported(c) {
				usable = append(usable, c)
			}
		}
		if len(usable) == 0 {
			return errNoIndex
		}

		err := find(ctx, usable)
		col, ok := MissingColumn(err)
		if !ok || !slices.Contains(usable, col) {
			return err
		}
		a.MarkUnsupported(col)
	}
	return errNoIndex
}

var errNoIndex = errors.New("no login index column available")
