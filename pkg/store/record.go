package store

import (
	"time"

	"github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/graphio"
	"github.com/mwessel/phigrid/pkg/system"
)

// NewRecord serializes a complex into a storable record.
// The name must pass [errors.ValidateSnapshotName].
func NewRecord(name string, c *system.Complex) (Record, error) {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return Record{}, err
	}
	data, err := graphio.MarshalComplex(c)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStore, err, "serialize snapshot %s", name)
	}
	return Record{
		Info: Info{
			Name:         name,
			Architecture: c.Architecture.String(),
			Phi:          c.Phi,
			Elements:     c.Graph.Len(),
			GeneratedAt:  c.GeneratedAt,
			SavedAt:      time.Now().UTC(),
		},
		Data: data,
	}, nil
}

// Complex deserializes the record back into a complex.
func (r Record) Complex() (*system.Complex, error) {
	c, err := graphio.UnmarshalComplex(r.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "deserialize snapshot %s", r.Info.Name)
	}
	return c, nil
}
