package must_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/must"
)

func TestBeFlaw(t *testing.T) {
	t.Parallel()

	f := flaw.From(errors.New("inner"))
	assert.Same(t, f, must.BeFlaw(fmt.Errorf("wrapped: %w", f)))
	assert.Panics(t, func() { must.BeFlaw(errors.New("plain")) })
}
