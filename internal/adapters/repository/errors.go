package repository

import (
	"errors"
	"fmt"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Sentinel kinds for store errors. ErrNotFound wraps the shared domain
// sentinel so callers can match either level with errors.Is.
var (
	ErrNotFound      = fmt.Errorf("%w in store", model.ErrPlayerNotFound)
	ErrAlreadyExists = errors.New("player already exists")
)
