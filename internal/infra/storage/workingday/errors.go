package workingday

import "errors"

var (
	// ErrWorkingDayNotFound возвращается, когда рабочий день не найден
	ErrWorkingDayNotFound = errors.New("workingday.repository: working day not found")

	// ErrWorkingDayExists возвращается при попытке создать второй рабочий день на ту же дату
	ErrWorkingDayExists = errors.New("workingday.repository: working day already exists for this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workingday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workingday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workingday.repository: failed to scan row")
)
