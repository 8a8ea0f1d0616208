package pricingrule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CoworkingService/pkg/txmanager"
)

const table = "pricing_rules"

var columns = []string{
	"id",
	"area_id",
	"version",
	"active",
	"definition",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил ценообразования
// У зоны хранится история версий, действующей считается последняя версия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCurrentByAreaID возвращает последнюю версию правила зоны
// Активность правила проверяет вызывающий код
func (r *Repository) GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"area_id": areaID}).
		OrderBy("version DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentByAreaID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetCurrentByAreaID: %w", err)
	}

	return rule, nil
}

// Save сохраняет новую версию правила и снимает активность с предыдущих
// Должен вызываться внутри транзакции: две операции не атомарны по отдельности
func (r *Repository) Save(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	definition, err := json.Marshal(rule.Definition)
	if err != nil {
		return nil, fmt.Errorf("%w: Save: %v", ErrEncodeDefinition, err)
	}

	deactivateQuery, deactivateArgs, err := psqlbuilder.Update(table).
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"area_id": rule.AreaID, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return nil, fmt.Errorf("%w: Save - deactivate previous versions: %w", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert(table).
		Columns("area_id", "version", "active", "definition", "created_by").
		Values(
			rule.AreaID,
			squirrel.Expr("COALESCE((SELECT MAX(version) FROM pricing_rules WHERE area_id = ?), 0) + 1", rule.AreaID),
			rule.Active,
			string(definition),
			rule.CreatedBy,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(
		&rule.ID,
		&rule.Version,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

func scanRule(row *sql.Row) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var definition []byte

	err := row.Scan(
		&rule.ID,
		&rule.AreaID,
		&rule.Version,
		&rule.Active,
		&definition,
		&rule.CreatedBy,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal(definition, &rule.Definition); err != nil {
		return nil, fmt.Errorf("%w: rule %d: %v", ErrDecodeDefinition, rule.ID, err)
	}

	return &rule, nil
}
