package roadmap

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type roadmapRow struct {
	Email     string         `db:"email"`
	Title     string         `db:"title"`
	Nodes     types.JSONText `db:"nodes"`
	Edges     types.JSONText `db:"edges"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (row *roadmapRow) roadmap() (*Roadmap, error) {
	r := &Roadmap{
		Email:     row.Email,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := row.Nodes.Unmarshal(&r.Nodes); err != nil {
		return nil, err
	}
	if err := row.Edges.Unmarshal(&r.Edges); err != nil {
		return nil, err
	}
	return r, nil
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTitles(ctx context.Context, email string) ([]string, error) {
	query := `SELECT title FROM roadmaps WHERE email = $1 ORDER BY created_at ASC, title ASC`

	titles := []string{}
	if err := r.db.SelectContext(ctx, &titles, query, email); err != nil {
		return nil, storageError("list titles", err)
	}

	return titles, nil
}

func (r *repository) Save(ctx context.Context, rm *Roadmap) (bool, error) {
	nodes, err := json.Marshal(nonNil(rm.Nodes))
	if err != nil {
		return false, err
	}
	edges, err := json.Marshal(nonNil(rm.Edges))
	if err != nil {
		return false, err
	}

	// xmax is zero only for a freshly inserted row.
	query := `
		INSERT INTO roadmaps (email, title, nodes, edges)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, title)
		DO UPDATE SET nodes = EXCLUDED.nodes, edges = EXCLUDED.edges, updated_at = NOW()
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err = r.db.GetContext(ctx, &created, query,
		rm.Email, rm.Title, types.JSONText(nodes), types.JSONText(edges))
	if err != nil {
		return false, storageError("save roadmap", err)
	}

	return created, nil
}

func (r *repository) Get(ctx context.Context, email, title string) (*Roadmap, error) {
	query := `
		SELECT email, title, nodes, edges, created_at, updated_at
		FROM roadmaps
		WHERE email = $1 AND title = $2
	`

	var row roadmapRow
	err := r.db.GetContext(ctx, &row, query, email, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoadmapNotFound
		}
		return nil, storageError("get roadmap", err)
	}

	rm, err := row.roadmap()
	if err != nil {
		return nil, storageError("decode roadmap", err)
	}
	return rm, nil
}

func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
