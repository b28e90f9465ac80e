package domain

import "time"

// Label 标签领域模型
type Label struct {
	ID        int64
	UID       int64
	Name      string
	CreatedAt time.Time
}
