package storage

import (
	"errors"

	"github.com/aretw0/valueprop/pkg/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrKeyNotFound)
}
