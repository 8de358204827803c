package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSetsTimeouts(t *testing.T) {
	h := http.NewServeMux()
	srv := New(":0", h)

	assert.Equal(t, ":0", srv.Addr)
	assert.Same(t, h, srv.Handler)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout)
}
