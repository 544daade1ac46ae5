package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOpener struct {
	err error

	calls   int
	gotName string
	gotArgs []string
}

func (s *stubOpener) Run(_ context.Context, name string, args ...string) error {
	s.calls++
	s.gotName = name
	s.gotArgs = args
	return s.err
}

func TestDestinationURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/dir/?api=1&destination=Central+Station%2C+Hamburg",
		DestinationURL("Central Station, Hamburg"))
}

func TestStartNavigationOpensMapsURL(t *testing.T) {
	runner := &stubOpener{}
	o := NewOpener(nil)
	o.runner = runner

	started, err := o.StartNavigation(context.Background(), "Airport")
	require.NoError(t, err)
	assert.True(t, started)

	require.Equal(t, 1, runner.calls)
	assert.Contains(t, runner.gotArgs[len(runner.gotArgs)-1], "destination=Airport")
}

func TestStartNavigationEmptyLocation(t *testing.T) {
	runner := &stubOpener{}
	o := NewOpener(nil)
	o.runner = runner

	started, err := o.StartNavigation(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, started)
	assert.Zero(t, runner.calls)
}

func TestStartNavigationOpenerFailure(t *testing.T) {
	runner := &stubOpener{err: errors.New("exec: not found")}
	o := NewOpener(nil)
	o.runner = runner

	started, err := o.StartNavigation(context.Background(), "somewhere")
	require.Error(t, err)
	assert.False(t, started)
}
