package entity

import "time"

// ActivityLog registro de auditoría de solo escritura.
type ActivityLog struct {
	ID          string
	Description string
	Date        time.Time
}
