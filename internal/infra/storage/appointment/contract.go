package appointment

import "github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
