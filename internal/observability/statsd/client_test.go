package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenUDP(t *testing.T) (*net.UDPConn, string) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, conn.LocalAddr().String()
}

func readLine(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestClient_EmitsMetrics(t *testing.T) {
	server, addr := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr, Prefix: "platform."})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	require.True(t, client.Enabled())

	client.Count("reaper.swept", 3, map[string]string{"result": "success"})
	assert.Equal(t, "platform.reaper.swept:3|c|#result:success", readLine(t, server))

	client.Timing("reaper.sweep_duration", 1500*time.Millisecond, nil)
	assert.Equal(t, "platform.reaper.sweep_duration:1500|ms", readLine(t, server))

	client.Gauge("reaper.last_success_epoch", 42, nil)
	assert.Equal(t, "platform.reaper.last_success_epoch:42|g", readLine(t, server))
}

func TestClient_DisabledIsSafe(t *testing.T) {
	client, err := NewClient(Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// No connection; writes are dropped without panicking.
	client.Count("x", 1, nil)
	require.NoError(t, client.Close())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	nilClient.Count("x", 1, nil)
	nilClient.Timing("x", time.Second, nil)
	nilClient.Gauge("x", 1, nil)
	require.NoError(t, nilClient.Close())
}
