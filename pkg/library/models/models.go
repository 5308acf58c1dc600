// Package models defines the photofold domain entities and their common
// errors. All persistence-facing structs carry GORM tags; the store package
// migrates them with AutoMigrate.
package models

// AllModels returns every model that participates in schema migration.
// Order matters for foreign key creation.
func AllModels() []any {
	return []any{
		&User{},
		&Asset{},
		&Album{},
	}
}
