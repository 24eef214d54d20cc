package types

import "time"

// BaseEntity - метки времени, которые выставляет сама база.
type BaseEntity struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
