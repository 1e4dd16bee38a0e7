// Package catalog reads career records from the configured backing store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"career-workers/internal/models"
)

// ErrQueryFailed marks a store that answered but whose response could not be read.
var ErrQueryFailed = errors.New("catalog query failed")

// Filter narrows a catalog listing. The zero value lists every career.
type Filter struct {
	Category string `json:"category,omitempty"`
}

// Repository lists careers in a stable catalog order.
type Repository interface {
	ListCareers(ctx context.Context, f Filter) ([]models.Career, error)
}

// StaticRepository serves careers from memory.
type StaticRepository struct {
	careers []models.Career
}

func NewStatic(careers []models.Career) *StaticRepository {
	return &StaticRepository{careers: careers}
}

// LoadFile reads a JSON array of careers.
func LoadFile(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var careers []models.Career
	if err := json.Unmarshal(data, &careers); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return NewStatic(careers), nil
}

func (r *StaticRepository) ListCareers(ctx context.Context, f Filter) ([]models.Career, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Career, 0, len(r.careers))
	for _, c := range r.careers {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// decodeProfile unmarshals an optional JSON column. NULL, empty and JSON
// null all mean the profile was never authored.
func decodeProfile[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
