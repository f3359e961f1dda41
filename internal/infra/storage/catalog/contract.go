package catalog

import "github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/dbmetrics"

// DBExecutor исполнитель запросов: *sql.DB, обертка dbmetrics или транзакция
type DBExecutor = dbmetrics.DBExecutor
