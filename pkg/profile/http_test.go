package profile

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/finch/internal/helper"
)

const profilesDoc = `
- connector: stripe
  categories:
    card_pm:
      PaymentIntent:
        request:
          amount: 6500
        response:
          status: 200
          body:
            status: requires_payment_method
`

func TestLoadHTTP(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	type responder struct {
		statusCode int
		response   string
	}
	tests := []struct {
		name      string
		cfg       HTTPLoaderConfig
		responder responder
		wantErr   bool
	}{
		{
			name: "load profiles",
			cfg: HTTPLoaderConfig{
				Url:   "https://fixtures.test.com/profiles.yaml",
				Retry: retryOnce(),
			},
			responder: responder{statusCode: 200, response: profilesDoc},
		},
		{
			name: "load profiles with auth",
			cfg: HTTPLoaderConfig{
				Url:   "https://fixtures.test.com/profiles.yaml",
				Token: "SECRET",
				Retry: retryOnce(),
			},
			responder: responder{statusCode: 200, response: profilesDoc},
		},
		{
			name: "endpoint returns 400",
			cfg: HTTPLoaderConfig{
				Url:   "https://fixtures.test.com/profiles.yaml",
				Retry: retryOnce(),
			},
			responder: responder{statusCode: 400, response: profilesDoc},
			wantErr:   true,
		},
		{
			name: "payload not yaml",
			cfg: HTTPLoaderConfig{
				Url:   "https://fixtures.test.com/profiles.yaml",
				Retry: retryOnce(),
			},
			responder: responder{statusCode: 200, response: `:this is not yaml`},
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.RegisterResponder(http.MethodGet, tt.cfg.Url,
				func(req *http.Request) (*http.Response, error) {
					if tt.cfg.Token != "" {
						require.Equal(t, fmt.Sprintf("Bearer %s", tt.cfg.Token), req.Header.Get("Authorization"))
					}
					return httpmock.NewStringResponder(tt.responder.statusCode, tt.responder.response)(req)
				},
			)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			r, err := LoadHTTP(ctx, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			f, err := r.Resolve("stripe", "card_pm", "PaymentIntent")
			require.NoError(t, err)
			assert.Equal(t, 200, f.Response.Status)
		})
	}
}

func retryOnce() helper.RetryConfig {
	return helper.RetryConfig{Count: 1, Delay: time.Millisecond}
}
