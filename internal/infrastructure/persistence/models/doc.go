// Package models holds the GORM persistence models and their conversions to
// and from the domain entities. Repositories in the parent package are the
// only callers.
package models
