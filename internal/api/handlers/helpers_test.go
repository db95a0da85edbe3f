package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/storedesk/backoffice-api/internal/utils/response"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(body)
}

// decodeData unwraps the success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	if dest != nil && resp.Data != nil {
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, dest))
	}

	return resp
}
