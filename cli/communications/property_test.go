package communications

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/UnifyEM/storefront/cli/credentials"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/schema"
)

var scriptCodes = []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError}

// scriptedTransport answers API calls with a fixed sequence of status codes
type scriptedTransport struct {
	mu           sync.Mutex
	codes        []int
	refreshOK    bool
	apiCalls     int
	refreshCalls int
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}

	if req.URL.Path == schema.EndpointTokenRefresh {
		s.refreshCalls++
		if s.refreshOK {
			return response(req, http.StatusOK, `{"access":"A2"}`), nil
		}
		return response(req, http.StatusUnauthorized, `{}`), nil
	}

	code := http.StatusOK
	if s.apiCalls < len(s.codes) {
		code = s.codes[s.apiCalls]
	}
	s.apiCalls++
	return response(req, code, `{}`), nil
}

func response(req *http.Request, code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    req,
	}
}

func TestRefreshBoundProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a call performs at most one refresh and two attempts", prop.ForAll(
		func(script []int, refreshOK bool, loggedIn bool) bool {
			codes := make([]int, len(script))
			for i, s := range script {
				codes[i] = scriptCodes[s]
			}

			base := &scriptedTransport{codes: codes, refreshOK: refreshOK}
			store := credentials.NewMemory()
			if loggedIn {
				_ = store.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"})
			}
			rt := newRefreshTransport("http://shop.test", store, base, null.Logger())

			req, _ := http.NewRequest(http.MethodPost, "http://shop.test"+schema.EndpointCartItems, bytes.NewReader([]byte(`{"product":1}`)))
			resp, err := rt.RoundTrip(req)
			if err != nil {
				return false
			}
			_ = resp.Body.Close()

			if base.refreshCalls > 1 || base.apiCalls > 2 {
				return false
			}
			// A retry only happens after a successful refresh
			if base.apiCalls == 2 && (!refreshOK || base.refreshCalls != 1) {
				return false
			}
			// A failed refresh always leaves the store empty
			if base.refreshCalls == 1 && !refreshOK {
				if _, ok := store.Get(); ok {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(scriptCodes)-1)),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
