package policy

import "github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
