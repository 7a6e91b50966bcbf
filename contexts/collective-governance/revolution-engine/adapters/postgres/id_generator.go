package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

type IDGenerator struct{}

func (IDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
