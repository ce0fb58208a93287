// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model converts to and from its
// entity with ToDomain and FromDomain, and repositories only ever touch models.
package models
