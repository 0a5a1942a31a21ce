package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"inmomax/internal/model"
	"inmomax/internal/utils"
)

// Schema creates the tables used by PostgresRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS propiedades (
	id                  BIGSERIAL PRIMARY KEY,
	titulo              TEXT NOT NULL,
	descripcion         TEXT NOT NULL,
	precio              DOUBLE PRECISION NOT NULL,
	ubicacion           TEXT NOT NULL,
	direccion           TEXT,
	tipo                TEXT NOT NULL,
	operacion           TEXT NOT NULL,
	habitaciones        INTEGER NOT NULL DEFAULT 0,
	banos               INTEGER NOT NULL DEFAULT 0,
	metros              DOUBLE PRECISION NOT NULL,
	metros_terreno      DOUBLE PRECISION,
	antiguedad          INTEGER,
	expensas            DOUBLE PRECISION,
	caracteristicas     JSONB NOT NULL DEFAULT '[]',
	servicios           JSONB NOT NULL DEFAULT '[]',
	imagenes            JSONB NOT NULL DEFAULT '[]',
	coordenadas         JSONB,
	estado              TEXT NOT NULL DEFAULT 'disponible',
	destacada           BOOLEAN NOT NULL DEFAULT FALSE,
	fecha_publicacion   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	fecha_actualizacion TIMESTAMPTZ,
	agente              JSONB NOT NULL,
	vistas              INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_propiedades_tipo_operacion ON propiedades (tipo, operacion);
CREATE INDEX IF NOT EXISTS idx_propiedades_estado ON propiedades (estado);

CREATE TABLE IF NOT EXISTS favoritos (
	usuario_id   TEXT NOT NULL,
	propiedad_id BIGINT NOT NULL REFERENCES propiedades(id),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (usuario_id, propiedad_id)
);
`

const propertyColumns = `
	id, titulo, descripcion, precio, ubicacion, direccion, tipo, operacion,
	habitaciones, banos, metros, metros_terreno, antiguedad, expensas,
	caracteristicas, servicios, imagenes, coordenadas, estado, destacada,
	fecha_publicacion, fecha_actualizacion, agente, vistas`

// PostgresRepository stores properties in PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

var _ PropertyRepository = (*PostgresRepository)(nil)

// NewPostgresRepository connects to PostgreSQL.
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an open connection.
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the schema if missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed inserts props when the table is empty, keeping their IDs.
func (r *PostgresRepository) Seed(ctx context.Context, props []model.Property) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM propiedades`); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range props {
		p := props[i]
		query := `INSERT INTO propiedades (` + propertyColumns + `) VALUES (
			:id, :titulo, :descripcion, :precio, :ubicacion, :direccion, :tipo, :operacion,
			:habitaciones, :banos, :metros, :metros_terreno, :antiguedad, :expensas,
			:caracteristicas, :servicios, :imagenes, :coordenadas, :estado, :destacada,
			:fecha_publicacion, :fecha_actualizacion, :agente, :vistas)`
		if _, err := tx.NamedExecContext(ctx, query, &p); err != nil {
			return 0, fmt.Errorf("failed to seed property %d: %w", p.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('propiedades', 'id'), (SELECT MAX(id) FROM propiedades))`); err != nil {
		return 0, fmt.Errorf("failed to reset id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(props), nil
}

// likeEscaper quotes LIKE metacharacters so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere renders the filters of q as a WHERE clause with positional
// parameters starting at $1. It returns the clause, its arguments and the next
// free parameter index.
func buildWhere(q model.PropertyQuery) (string, []interface{}, int) {
	whereClauses := []string{"estado = 'disponible'"}
	args := []interface{}{}
	argIndex := 1

	add := func(cond string, arg interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf(cond, argIndex))
		args = append(args, arg)
		argIndex++
	}

	if q.ExcludeID != 0 {
		add("id <> $%d", q.ExcludeID)
	}
	if q.Type != "" {
		add("tipo = $%d", string(q.Type))
	}
	if q.Operation != "" {
		add("operacion = $%d", string(q.Operation))
	}
	if q.Location != "" {
		add(`ubicacion ILIKE $%d ESCAPE '\'`, "%"+likeEscaper.Replace(q.Location)+"%")
	}
	if q.PriceMin != nil {
		add("precio >= $%d", *q.PriceMin)
	}
	if q.PriceMax != nil {
		add("precio <= $%d", *q.PriceMax)
	}
	if q.RoomsMin != nil {
		add("habitaciones >= $%d", *q.RoomsMin)
	}
	if q.BathsMin != nil {
		add("banos >= $%d", *q.BathsMin)
	}
	if q.SurfaceMin != nil {
		add("metros >= $%d", *q.SurfaceMin)
	}
	if q.SurfaceMax != nil {
		add("metros <= $%d", *q.SurfaceMax)
	}
	if q.AgeMin != nil {
		add("antiguedad >= $%d", *q.AgeMin)
	}
	if q.AgeMax != nil {
		add("antiguedad <= $%d", *q.AgeMax)
	}
	if q.Featured != nil {
		add("destacada = $%d", *q.Featured)
	}
	if len(q.Amenities) > 0 {
		conds, params, next := utils.BuildAmenityQuery("caracteristicas", q.Amenities, argIndex)
		whereClauses = append(whereClauses, conds...)
		args = append(args, params...)
		argIndex = next
	}

	return strings.Join(whereClauses, " AND "), args, argIndex
}

func orderBy(order model.SortOrder) string {
	switch order {
	case model.SortPriceAsc:
		return "precio ASC, id ASC"
	case model.SortPriceDesc:
		return "precio DESC, id ASC"
	case model.SortSurfaceDesc:
		return "metros DESC, id ASC"
	case model.SortRecent:
		return "fecha_publicacion DESC, id ASC"
	default:
		return "id ASC"
	}
}

// List performs a filtered, paginated listing.
func (r *PostgresRepository) List(ctx context.Context, q model.PropertyQuery) ([]model.Property, int, error) {
	whereClause, args, argIndex := buildWhere(q)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM propiedades WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM propiedades
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, propertyColumns, whereClause, orderBy(q.Sort), argIndex, argIndex+1)

	var limit interface{} = q.Limit
	if q.Limit <= 0 {
		limit = nil
	}
	args = append(args, limit, q.Offset)

	var props []model.Property
	if err := r.db.SelectContext(ctx, &props, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return props, total, nil
}

// Get retrieves a property that has not been deleted.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*model.Property, error) {
	var p model.Property
	query := `SELECT ` + propertyColumns + ` FROM propiedades WHERE id = $1 AND estado <> 'inactiva'`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE propiedades SET vistas = vistas + 1 WHERE id = $1 AND estado <> 'inactiva'`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Create(ctx context.Context, p *model.Property) error {
	query := `
		INSERT INTO propiedades (
			titulo, descripcion, precio, ubicacion, direccion, tipo, operacion,
			habitaciones, banos, metros, metros_terreno, antiguedad, expensas,
			caracteristicas, servicios, imagenes, coordenadas, estado, destacada,
			fecha_publicacion, agente, vistas
		) VALUES (
			:titulo, :descripcion, :precio, :ubicacion, :direccion, :tipo, :operacion,
			:habitaciones, :banos, :metros, :metros_terreno, :antiguedad, :expensas,
			:caracteristicas, :servicios, :imagenes, :coordenadas, :estado, :destacada,
			:fecha_publicacion, :agente, :vistas
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return fmt.Errorf("failed to create property: no id returned")
	}
	if err := rows.Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to scan property id: %w", err)
	}
	return nil
}

// Update overwrites the editable fields. Views and publication date are kept.
func (r *PostgresRepository) Update(ctx context.Context, p *model.Property) error {
	query := `
		UPDATE propiedades SET
			titulo = :titulo, descripcion = :descripcion, precio = :precio,
			ubicacion = :ubicacion, direccion = :direccion, tipo = :tipo, operacion = :operacion,
			habitaciones = :habitaciones, banos = :banos, metros = :metros,
			metros_terreno = :metros_terreno, antiguedad = :antiguedad, expensas = :expensas,
			caracteristicas = :caracteristicas, servicios = :servicios, imagenes = :imagenes,
			coordenadas = :coordenadas, agente = :agente, fecha_actualizacion = NOW()
		WHERE id = :id AND estado <> 'inactiva'`

	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE propiedades SET estado = 'inactiva', fecha_actualizacion = NOW() WHERE id = $1 AND estado <> 'inactiva'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) ToggleFavorite(ctx context.Context, userID string, id int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM propiedades WHERE id = $1 AND estado <> 'inactiva')`, id); err != nil {
		return false, fmt.Errorf("failed to check property: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM favoritos WHERE usuario_id = $1 AND propiedad_id = $2`, userID, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	favorite := removed == 0
	if favorite {
		if _, err := tx.ExecContext(ctx, `INSERT INTO favoritos (usuario_id, propiedad_id) VALUES ($1, $2)`, userID, id); err != nil {
			return false, fmt.Errorf("failed to add favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit favorite: %w", err)
	}
	return favorite, nil
}

// Stats aggregates the available properties.
func (r *PostgresRepository) Stats(ctx context.Context) (*model.PropertyStats, error) {
	stats := &model.PropertyStats{
		ByType:      map[string]int{},
		ByOperation: map[string]int{},
	}

	var totals struct {
		Total    int     `db:"total"`
		Average  float64 `db:"promedio"`
		Featured int     `db:"destacadas"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT COUNT(*) AS total,
		       COALESCE(AVG(precio), 0) AS promedio,
		       COUNT(*) FILTER (WHERE destacada) AS destacadas
		FROM propiedades WHERE estado = 'disponible'`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate properties: %w", err)
	}
	stats.Total = totals.Total
	stats.AveragePrice = totals.Average
	stats.Featured = totals.Featured

	type bucket struct {
		Key   string `db:"clave"`
		Count int    `db:"cantidad"`
	}
	for column, target := range map[string]map[string]int{"tipo": stats.ByType, "operacion": stats.ByOperation} {
		var buckets []bucket
		query := fmt.Sprintf(`SELECT %s AS clave, COUNT(*) AS cantidad FROM propiedades WHERE estado = 'disponible' GROUP BY %s`, column, column)
		if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
			return nil, fmt.Errorf("failed to count by %s: %w", column, err)
		}
		for _, b := range buckets {
			target[b.Key] = b.Count
		}
	}

	return stats, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
