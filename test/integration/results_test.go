package integration

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/referendum-bg/anketa/internal/core/domain"
)

func TestLiveResultsStream(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	wsURL := "ws" + strings.TrimPrefix(app.Server.URL, "http") + "/api/results/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	readTally := func() domain.Tally {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
		var msg struct {
			Type    string       `json:"type"`
			Payload domain.Tally `json:"payload"`
		}
		for {
			require.NoError(t, conn.ReadJSON(&msg))
			if msg.Type == "tally" {
				return msg.Payload
			}
		}
	}

	assert.Equal(t, domain.Tally{}, readTally())

	resp := app.submit(t, votePayload("live@x.com", "fp-live-1"), nextIP())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, domain.Tally{For: 1, Against: 0, Total: 1}, readTally())
}
