package pricingrule

import "github.com/m04kA/SMC-CoworkingService/pkg/txmanager"

// DBExecutor общий интерфейс *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
