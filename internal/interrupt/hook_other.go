//go:build !windows

package interrupt

import (
	"context"
	"errors"
)

// ErrHooksUnsupported глобальные хуки есть только под Windows
var ErrHooksUnsupported = errors.New("global input hooks are only supported on windows")

func (im *InterruptManager) StartMonitoring(ctx context.Context) error {
	return ErrHooksUnsupported
}
