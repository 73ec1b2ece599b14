package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestServer_Refresh(t *testing.T) {
	favorites := &stubPinger{}
	index := &stubPinger{}

	s, err := NewServer(0, map[string]Pinger{
		"registry.favorites": favorites,
		"registry.provider":  index,
	})
	require.NoError(t, err)
	t.Cleanup(s.Stop)

	status := func(service string) healthpb.HealthCheckResponse_ServingStatus {
		resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		return resp.Status
	}

	s.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status("registry.favorites"))

	favorites.err = errors.New("connection refused")
	s.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status("registry.favorites"))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status("registry.provider"))

	favorites.err = nil
	s.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(""))
}
