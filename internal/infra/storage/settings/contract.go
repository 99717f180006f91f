package settings

import (
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
