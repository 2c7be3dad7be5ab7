package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `p.id, COALESCE(p.nome, ''), p.patrimonio, p.setor_id, COALESCE(s.nome, ''),
	COALESCE(p.responsavel_nome, ''), COALESCE(p.responsavel_email, ''), COALESCE(p.valor_unitario, 0),
	COALESCE(p.nota_fiscal, ''), p.nota_fiscal_url, COALESCE(p.marca, ''), COALESCE(p.modelo, ''),
	COALESCE(p.numero_serie, ''), COALESCE(p.data_aquisicao, ''), COALESCE(p.fornecedor, ''),
	COALESCE(p.garantia, ''), COALESCE(p.status, ''), COALESCE(p.observacao, ''),
	p.cadastrado_em, p.atualizado_em`

const assetFrom = ` FROM patrimonio p LEFT JOIN setores s ON s.id = p.setor_id`

// filterColumns columna por campo de búsqueda; "tipo_item" es el nombre heredado de "nome".
var filterColumns = map[string]string{
	entity.FilterFieldTag:         "p.patrimonio",
	entity.FilterFieldName:        "p.nome",
	"tipo_item":                   "p.nome",
	entity.FilterFieldResponsible: "p.responsavel_nome",
	entity.FilterFieldSector:      "s.nome",
}

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.Name, &a.Tag, &a.SectorID, &a.SectorName,
		&a.ResponsibleName, &a.ResponsibleEmail, &a.UnitValue,
		&a.InvoiceNumber, &a.InvoiceRef, &a.Brand, &a.Model,
		&a.SerialNumber, &a.AcquisitionDate, &a.Supplier,
		&a.Warranty, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Create inserta y completa CreatedAt/UpdatedAt con los valores de la base.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) (int64, error) {
	query := `
		INSERT INTO patrimonio (nome, patrimonio, setor_id, responsavel_nome, responsavel_email, valor_unitario,
			nota_fiscal, nota_fiscal_url, marca, modelo, numero_serie, data_aquisicao, fornecedor, garantia,
			status, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, cadastrado_em, atualizado_em`
	var id int64
	err := r.q.QueryRow(ctx, query,
		a.Name, a.Tag, a.SectorID, nullIfEmpty(a.ResponsibleName), nullIfEmpty(a.ResponsibleEmail), a.UnitValue,
		nullIfEmpty(a.InvoiceNumber), a.InvoiceRef, nullIfEmpty(a.Brand), nullIfEmpty(a.Model),
		nullIfEmpty(a.SerialNumber), nullIfEmpty(a.AcquisitionDate), nullIfEmpty(a.Supplier), nullIfEmpty(a.Warranty),
		nullIfEmpty(a.Status), nullIfEmpty(a.Notes),
	).Scan(&id, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return 0, translate("insert asset", err)
	}
	return id, nil
}

func (r *AssetRepo) GetByID(ctx context.Context, id int64) (*entity.Asset, error) {
	return r.getOne(ctx, "get asset", `SELECT `+assetColumns+assetFrom+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de patrimonio (el lado nulo del LEFT JOIN no se puede bloquear).
func (r *AssetRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error) {
	return r.getOne(ctx, "get asset for update", `SELECT `+assetColumns+assetFrom+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

// GetByTag comparación sin distinguir mayúsculas.
func (r *AssetRepo) GetByTag(ctx context.Context, tag string) (*entity.Asset, error) {
	return r.getOne(ctx, "get asset by tag", `SELECT `+assetColumns+assetFrom+` WHERE p.patrimonio ILIKE $1 LIMIT 1`, tag)
}

func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	query := `
		UPDATE patrimonio SET
			nome = $2, patrimonio = $3, setor_id = $4, responsavel_nome = $5, responsavel_email = $6,
			valor_unitario = $7, nota_fiscal = $8, nota_fiscal_url = $9, marca = $10, modelo = $11,
			numero_serie = $12, data_aquisicao = $13, fornecedor = $14, garantia = $15, status = $16,
			observacao = $17, atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em`
	err := r.q.QueryRow(ctx, query,
		a.ID, a.Name, a.Tag, a.SectorID, nullIfEmpty(a.ResponsibleName), nullIfEmpty(a.ResponsibleEmail),
		a.UnitValue, nullIfEmpty(a.InvoiceNumber), a.InvoiceRef, nullIfEmpty(a.Brand), nullIfEmpty(a.Model),
		nullIfEmpty(a.SerialNumber), nullIfEmpty(a.AcquisitionDate), nullIfEmpty(a.Supplier), nullIfEmpty(a.Warranty),
		nullIfEmpty(a.Status), nullIfEmpty(a.Notes),
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("patrimônio", a.ID)
		}
		return translate("update asset", err)
	}
	return nil
}

func (r *AssetRepo) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE patrimonio SET status = $2, atualizado_em = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return translate("set asset status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("patrimônio", id)
	}
	return nil
}

// ApplyBulk una sola sentencia UPDATE ... WHERE id = ANY($1) por acción.
func (r *AssetRepo) ApplyBulk(ctx context.Context, ids []int64, action entity.BulkAction) (int64, error) {
	var (
		query string
		args  []any
	)
	switch a := action.(type) {
	case entity.ChangeSector:
		query = `UPDATE patrimonio SET setor_id = $2, atualizado_em = NOW() WHERE id = ANY($1)`
		args = []any{ids, a.SectorID}
	case entity.ChangeStatus:
		query = `UPDATE patrimonio SET status = $2, atualizado_em = NOW() WHERE id = ANY($1)`
		args = []any{ids, a.Status}
	case entity.AssignResponsible:
		query = `UPDATE patrimonio SET responsavel_nome = $2, responsavel_email = $3, atualizado_em = NOW() WHERE id = ANY($1)`
		args = []any{ids, nullIfEmpty(a.Name), nullIfEmpty(a.Email)}
	default:
		return 0, fmt.Errorf("bulk: acción no soportada %T", action)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate("bulk "+action.Kind(), err)
	}
	return tag.RowsAffected(), nil
}

func (r *AssetRepo) InvoiceRefs(ctx context.Context, ids []int64) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT nota_fiscal_url FROM patrimonio WHERE id = ANY($1) AND nota_fiscal_url IS NOT NULL AND nota_fiscal_url <> ''`, ids)
	if err != nil {
		return nil, fmt.Errorf("invoice refs: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan invoice ref: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *AssetRepo) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM patrimonio WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, translate("delete assets", err)
	}
	return tag.RowsAffected(), nil
}

// Upsert por etiqueta; la nota fiscal adjunta se conserva.
func (r *AssetRepo) Upsert(ctx context.Context, a *entity.Asset) (int64, bool, error) {
	query := `
		INSERT INTO patrimonio (nome, patrimonio, setor_id, responsavel_nome, valor_unitario, nota_fiscal,
			marca, modelo, data_aquisicao, fornecedor, status, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (patrimonio) DO UPDATE SET
			nome = EXCLUDED.nome, setor_id = EXCLUDED.setor_id, responsavel_nome = EXCLUDED.responsavel_nome,
			valor_unitario = EXCLUDED.valor_unitario, nota_fiscal = EXCLUDED.nota_fiscal, marca = EXCLUDED.marca,
			modelo = EXCLUDED.modelo, data_aquisicao = EXCLUDED.data_aquisicao, fornecedor = EXCLUDED.fornecedor,
			status = EXCLUDED.status, observacao = EXCLUDED.observacao, atualizado_em = NOW()
		RETURNING id, (xmax = 0) AS inserted`
	var (
		id       int64
		inserted bool
	)
	err := r.q.QueryRow(ctx, query,
		a.Name, a.Tag, a.SectorID, nullIfEmpty(a.ResponsibleName), a.UnitValue, nullIfEmpty(a.InvoiceNumber),
		nullIfEmpty(a.Brand), nullIfEmpty(a.Model), nullIfEmpty(a.AcquisitionDate), nullIfEmpty(a.Supplier),
		nullIfEmpty(a.Status), nullIfEmpty(a.Notes),
	).Scan(&id, &inserted)
	if err != nil {
		return 0, false, translate("upsert asset", err)
	}
	return id, inserted, nil
}

// buildWhere búsqueda libre o por campo; Field+Term tiene prioridad sobre Search.
func buildWhere(f entity.AssetFilter) (string, []any) {
	if col, ok := filterColumns[f.Field]; ok && f.Term != "" {
		return ` WHERE ` + col + ` ILIKE $1`, []any{"%" + f.Term + "%"}
	}
	if f.Search != "" {
		return ` WHERE (p.nome ILIKE $1 OR p.patrimonio ILIKE $1 OR s.nome ILIKE $1 OR p.responsavel_nome ILIKE $1)`,
			[]any{"%" + f.Search + "%"}
	}
	return "", nil
}

func (r *AssetRepo) List(ctx context.Context, f entity.AssetFilter, limit, offset int) ([]*entity.Asset, int, error) {
	where, args := buildWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+assetFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	query := `SELECT ` + assetColumns + assetFrom + where + ` ORDER BY p.id DESC`
	if limit > 0 {
		n := len(args)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n+1, n+2)
		args = append(args, limit, offset)
	}
	items, err := r.queryMany(ctx, "list assets", query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *AssetRepo) SimpleSearch(ctx context.Context, term string, limit int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + assetFrom + `
		WHERE p.patrimonio ILIKE $1 OR p.nome ILIKE $1 OR p.responsavel_nome ILIKE $1
		ORDER BY p.id DESC LIMIT $2`
	return r.queryMany(ctx, "simple search", query, "%"+term+"%", limit)
}

func (r *AssetRepo) ListByResponsible(ctx context.Context, nameOrEmail string) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + assetFrom + `
		WHERE p.responsavel_nome ILIKE $1 OR p.responsavel_email ILIKE $1
		ORDER BY p.patrimonio`
	return r.queryMany(ctx, "list by responsible", query, "%"+strings.TrimSpace(nameOrEmail)+"%")
}

// MaxNumericTag considera solo los dígitos de cada etiqueta ("PAT-0041" vale 41).
func (r *AssetRepo) MaxNumericTag(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(MAX(CAST(regexp_replace(patrimonio, '[^0-9]', '', 'g') AS BIGINT)), 0)
		FROM patrimonio
		WHERE regexp_replace(patrimonio, '[^0-9]', '', 'g') <> ''`
	var highest int64
	if err := r.q.QueryRow(ctx, query).Scan(&highest); err != nil {
		return 0, fmt.Errorf("max numeric tag: %w", err)
	}
	return highest, nil
}

func (r *AssetRepo) queryMany(ctx context.Context, op, query string, args ...any) ([]*entity.Asset, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
