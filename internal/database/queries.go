package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New creates Queries bound to db
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the statements for the guild settings table
type Queries struct {
	db DBTX
}

// WithTx binds the queries to a transaction
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Guild is one row of the guilds table
type Guild struct {
	ID         string
	Volume     float64
	Lang       int32
	SearchMode int32
}

const listGuilds = `-- name: ListGuilds :many
SELECT id, volume, lang, search_mode FROM guilds ORDER BY id
`

func (q *Queries) ListGuilds(ctx context.Context) ([]Guild, error) {
	rows, err := q.db.Query(ctx, listGuilds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Guild{}
	for rows.Next() {
		var i Guild
		if err := rows.Scan(&i.ID, &i.Volume, &i.Lang, &i.SearchMode); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertGuild = `-- name: InsertGuild :execrows
INSERT INTO guilds (id, volume, lang, search_mode)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING
`

type InsertGuildParams struct {
	ID         string
	Volume     float64
	Lang       int32
	SearchMode int32
}

func (q *Queries) InsertGuild(ctx context.Context, arg InsertGuildParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertGuild, arg.ID, arg.Volume, arg.Lang, arg.SearchMode)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateGuildVolume = `-- name: UpdateGuildVolume :execrows
UPDATE guilds SET volume = $2 WHERE id = $1
`

type UpdateGuildVolumeParams struct {
	ID     string
	Volume float64
}

func (q *Queries) UpdateGuildVolume(ctx context.Context, arg UpdateGuildVolumeParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateGuildVolume, arg.ID, arg.Volume)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateGuildLang = `-- name: UpdateGuildLang :execrows
UPDATE guilds SET lang = $2 WHERE id = $1
`

type UpdateGuildLangParams struct {
	ID   string
	Lang int32
}

func (q *Queries) UpdateGuildLang(ctx context.Context, arg UpdateGuildLangParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateGuildLang, arg.ID, arg.Lang)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateGuildSearchMode = `-- name: UpdateGuildSearchMode :execrows
UPDATE guilds SET search_mode = $2 WHERE id = $1
`

type UpdateGuildSearchModeParams struct {
	ID         string
	SearchMode int32
}

func (q *Queries) UpdateGuildSearchMode(ctx context.Context, arg UpdateGuildSearchModeParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateGuildSearchMode, arg.ID, arg.SearchMode)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteGuild = `-- name: DeleteGuild :exec
DELETE FROM guilds WHERE id = $1
`

func (q *Queries) DeleteGuild(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteGuild, id)
	return err
}
