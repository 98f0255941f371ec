package artex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/artex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := artex.Errorf(artex.ENOTFOUND, "article %q not found", "abc")

	assert.Equal(t, artex.ENOTFOUND, artex.ErrorCode(err))
	assert.Equal(t, "article \"abc\" not found", artex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, artex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, artex.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", artex.Errorf(artex.EINVALID, "bad url"))

	assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	assert.Equal(t, "bad url", artex.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, artex.EINTERNAL, artex.ErrorCode(err))
	assert.Equal(t, "Internal error.", artex.ErrorMessage(err))
}
