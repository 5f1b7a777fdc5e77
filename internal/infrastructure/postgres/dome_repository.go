package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
)

// DomeRepository はドームリポジトリのPostgreSQL実装
type DomeRepository struct {
	db *sqlx.DB
}

// NewDomeRepository は新しいDomeRepositoryを作成する
func NewDomeRepository(db *sqlx.DB) *DomeRepository {
	return &DomeRepository{db: db}
}

type domeRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

func (r domeRow) toEntity() *dome.Dome {
	return &dome.Dome{
		ID:         r.ID,
		Name:       r.Name,
		Rows:       r.Rows,
		SeatsInRow: r.SeatsInRow,
	}
}

// Create は新しいドームを作成する
func (r *DomeRepository) Create(ctx context.Context, d *dome.Dome) error {
	query := `INSERT INTO planetarium_domes (name, "rows", seats_in_row) VALUES ($1, $2, $3) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query, d.Name, d.Rows, d.SeatsInRow).Scan(&d.ID); err != nil {
		return fmt.Errorf("ドームの作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからドームを取得する
func (r *DomeRepository) GetByID(ctx context.Context, id int64) (*dome.Dome, error) {
	query := `SELECT id, name, "rows", seats_in_row FROM planetarium_domes WHERE id = $1`

	var row domeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dome.ErrDomeNotFound
		}
		return nil, fmt.Errorf("ドームの取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List はドーム一覧を取得する
func (r *DomeRepository) List(ctx context.Context) ([]*dome.Dome, error) {
	query := `SELECT id, name, "rows", seats_in_row FROM planetarium_domes ORDER BY id`

	var rows []domeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("ドーム一覧の取得に失敗: %w", err)
	}

	domes := make([]*dome.Dome, 0, len(rows))
	for _, row := range rows {
		domes = append(domes, row.toEntity())
	}
	return domes, nil
}

var _ dome.Repository = (*DomeRepository)(nil)
