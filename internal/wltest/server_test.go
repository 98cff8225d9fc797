package wltest_test

import (
	"testing"
	"time"

	"deedles.dev/wlsys/internal/wltest"
	"deedles.dev/wlsys/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHangUp(t *testing.T) {
	srv, conn := wltest.New(t)

	// The replies to sync are written after the client has gone.
	for id := uint32(2); id < 5; id++ {
		mb := wire.NewMessage(1, 0)
		mb.WriteUint(id)
		require.NoError(t, mb.Build(conn))
	}
	require.NoError(t, conn.Flush())
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return len(srv.Requests("wl_display", "sync")) == 3
	}, 5*time.Second, time.Millisecond)
	assert.NoError(t, srv.Err())
}

func TestRequestsRecorded(t *testing.T) {
	srv, conn := wltest.New(t, wltest.Global{Name: 1, Interface: "wl_compositor", Version: 4})
	defer conn.Close()

	mb := wire.NewMessage(1, 1)
	mb.WriteUint(2)
	require.NoError(t, mb.Build(conn))
	require.NoError(t, conn.Flush())

	require.Eventually(t, func() bool {
		return len(srv.Objects("wl_registry")) == 1
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, []string{"get_registry"}, srv.Methods(1))
	assert.NoError(t, srv.Err())
}
