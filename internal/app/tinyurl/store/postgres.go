package store

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tinyurl.local/internal/app/tinyurl"
)

// Postgres stores mappings in a two-column table (id primary key, url).
// The table itself is created by the migrations in internal/platform/migrate.
type Postgres struct {
	db      *pgxpool.Pool
	table   string // already quoted
	timeout time.Duration
}

var _ tinyurl.MappingStore = (*Postgres)(nil)

func NewPostgres(db *pgxpool.Pool, table string, timeout time.Duration) *Postgres {
	return &Postgres{
		db:      db,
		table:   pgx.Identifier{table}.Sanitize(),
		timeout: timeout,
	}
}

func (p *Postgres) Name() string { return PostgresName }

// Put upserts, so a repeated id overwrites the earlier url like the other backends.
func (p *Postgres) Put(ctx context.Context, m tinyurl.Mapping) tinyurl.Result {
	dbctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.db.Exec(dbctx,
		"INSERT INTO "+p.table+" (id, url) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET url = EXCLUDED.url",
		m.ID, m.URL,
	)
	if err != nil {
		return tinyurl.Failed(postgresFailure(err))
	}
	return tinyurl.OK("")
}

func (p *Postgres) Get(ctx context.Context, id string) tinyurl.Result {
	dbctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	var url string
	err := p.db.QueryRow(dbctx, "SELECT url FROM "+p.table+" WHERE id = $1", id).Scan(&url)
	if errors.Is(err, pgx.ErrNoRows) {
		return tinyurl.NotFound()
	}
	if err != nil {
		return tinyurl.Failed(postgresFailure(err))
	}
	if url == "" {
		return tinyurl.NotFound()
	}
	return tinyurl.OK(url)
}

func (p *Postgres) Ping(ctx context.Context) error {
	dbctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.db.Ping(dbctx); err != nil {
		return postgresFailure(err)
	}
	return nil
}

// postgresFailure names server errors by SQLSTATE and picks the status from
// the SQLSTATE class.
func postgresFailure(err error) *tinyurl.Failure {
	if f, ok := contextFailure(PostgresName, err); ok {
		return f
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := http.StatusInternalServerError
		class := pgErr.Code
		if len(class) > 2 {
			class = class[:2]
		}
		switch class {
		case "22", "23", "42": // data exception, integrity, syntax/undefined table
			code = http.StatusBadRequest
		case "08", "53", "57": // connection, resources, operator intervention
			code = http.StatusServiceUnavailable
		}
		return &tinyurl.Failure{Store: PostgresName, Code: code, Name: pgErr.Code, Message: pgErr.Message}
	}

	if pgconn.Timeout(err) {
		return &tinyurl.Failure{Store: PostgresName, Code: http.StatusGatewayTimeout, Name: "Timeout", Message: err.Error()}
	}
	return &tinyurl.Failure{Store: PostgresName, Code: http.StatusServiceUnavailable, Name: "ConnectionError", Message: err.Error()}
}
