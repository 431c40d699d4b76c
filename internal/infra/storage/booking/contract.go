package booking

import (
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// DBExecutor is reused from dbmetrics so the repository accepts *sql.DB, *dbmetrics.DB and transactions alike
type DBExecutor = dbmetrics.DBExecutor
