package api

import (
	"fmt"

	"github.com/visualcaption/vcap/internal/common"
)

// Transport-level sentinels. Each wraps the corresponding common sentinel,
// so errors.Is matches at either level.
var (
	ErrUnavailable  = fmt.Errorf("server unavailable: %w", common.ErrorInternal)
	ErrUnauthorized = fmt.Errorf("credential rejected: %w", common.ErrorUnauthorized)
	ErrNotFound     = fmt.Errorf("resource missing: %w", common.ErrorNotFound)
)
