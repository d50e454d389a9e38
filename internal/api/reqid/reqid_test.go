package reqid

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "pw-"), a)
	assert.Regexp(t, wellFormed, a)
	_, err := uuid.Parse(strings.TrimPrefix(a, "pw-"))
	require.NoError(t, err)
}

func TestAccept(t *testing.T) {
	assert.Equal(t, "custom.id-1_2", Accept("custom.id-1_2"))

	for _, bad := range []string{"", "has space", "invalid@#$%id", strings.Repeat("a", 65)} {
		got := Accept(bad)
		assert.NotEqual(t, bad, got)
		assert.True(t, strings.HasPrefix(got, "pw-"), got)
	}
}

func TestFromRequest(t *testing.T) {
	assert.Empty(t, FromRequest(nil))

	req := httptest.NewRequest("GET", "/v1/healthz", nil)
	assert.Empty(t, FromRequest(req))

	req.Header.Set(Header, "from-header")
	assert.Equal(t, "from-header", FromRequest(req))

	req = req.WithContext(NewContext(context.Background(), "from-context"))
	assert.Equal(t, "from-context", FromRequest(req))
}

func TestField(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	f := Field(req)
	require.Equal(t, "request_id", f.Key)
	assert.Equal(t, "unknown", f.String)

	req = req.WithContext(NewContext(req.Context(), "rid-7"))
	assert.Equal(t, "rid-7", Field(req).String)
}
