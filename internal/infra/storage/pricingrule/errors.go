package pricingrule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда у зоны нет правила ценообразования
	ErrRuleNotFound = errors.New("pricingrule.repository: pricing rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricingrule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricingrule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricingrule.repository: failed to scan row")

	// ErrEncodeDefinition возвращается, если определение правила не сериализуется в JSON
	ErrEncodeDefinition = errors.New("pricingrule.repository: failed to encode rule definition")

	// ErrDecodeDefinition возвращается, если сохраненное определение не разбирается
	ErrDecodeDefinition = errors.New("pricingrule.repository: failed to decode rule definition")
)
