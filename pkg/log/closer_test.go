package log

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackingCloser struct {
	closed int
	synced int
	err    error
}

func (c *trackingCloser) Close() error {
	c.closed++
	return c.err
}

func (c *trackingCloser) Sync() error {
	c.synced++
	return nil
}

func TestCloser_Close(t *testing.T) {
	t.Parallel()

	t.Run("모든 리소스를 닫고 hook을 비활성화", func(t *testing.T) {
		t.Parallel()

		a, b := &trackingCloser{}, &trackingCloser{}
		h := &hook{}
		c := &closer{closers: []io.Closer{a, nil, b}, hook: h}

		assert.NoError(t, c.Close())
		assert.True(t, h.closed)
		assert.Equal(t, 1, a.closed)
		assert.Equal(t, 1, a.synced)
		assert.Equal(t, 1, b.closed)
	})

	t.Run("일부 실패해도 나머지를 닫고 에러를 합쳐 반환", func(t *testing.T) {
		t.Parallel()

		errA, errB := errors.New("a failed"), errors.New("b failed")
		a, b, ok := &trackingCloser{err: errA}, &trackingCloser{err: errB}, &trackingCloser{}
		c := &closer{closers: []io.Closer{a, ok, b}}

		err := c.Close()
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Equal(t, 1, ok.closed)
	})

	t.Run("중복 호출은 no-op", func(t *testing.T) {
		t.Parallel()

		a := &trackingCloser{}
		c := &closer{closers: []io.Closer{a}}

		assert.NoError(t, c.Close())
		assert.NoError(t, c.Close())
		assert.Equal(t, 1, a.closed)
	})
}
