package infrastructure

import (
	"context"
	"database/sql"
)

// Specification pattern pour les prédicats de requête: le filtre normalisé
// produit sa clause WHERE et ses arguments, le repository ne fait qu'exécuter.
type Specification interface {
	ToSQL() (string, []interface{})
}

// BaseRepository structure de base pour les repositories en lecture seule
// Le handle *sql.DB est passé explicitement à la construction (portée requête),
// jamais tenu dans un état global de processus.
type BaseRepository struct {
	db  *sql.DB
	ctx context.Context
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *sql.DB) BaseRepository {
	return BaseRepository{
		db:  db,
		ctx: context.Background(),
	}
}

// Context retourne le contexte actuel
func (r *BaseRepository) Context() context.Context {
	return r.ctx
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.QueryContext(r.ctx, query, args...)
}

// QueryRow exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRow(query string, args ...interface{}) *sql.Row {
	return r.db.QueryRowContext(r.ctx, query, args...)
}

// Ping vérifie que le store est joignable (sonde health check, sans retry)
func (r *BaseRepository) Ping() error {
	return r.db.PingContext(r.ctx)
}
