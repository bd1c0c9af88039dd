package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/fanout"
	"tracker/internal/adapters/out/memory/shipmentrepo"
	"tracker/internal/adapters/out/postgres/journalrepo"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/services"
	"tracker/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow int64 = 1_690_000_000_000

type testAPI struct {
	server   *httptest.Server
	registry *shipmentrepo.InMemoryShipmentRepository
	hub      *fanout.Hub
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	clock := kernel.ClockFunc(func() int64 { return testNow })
	registry := shipmentrepo.NewInMemoryShipmentRepository(shipment.NewFactory(clock))
	hub := fanout.NewHub(httpadapter.NewSnapshotEncoder(), logger, fanout.WithSendTimeout(time.Second))

	srv := httpadapter.NewServer(
		commands.NewCreateShipmentCommandHandler(registry, clock),
		commands.NewProcessUpdateCommandHandler(
			registry, services.NewUpdateDispatcher(), hub, journalrepo.NewNopUpdateJournal(), clock, logger,
		),
		commands.NewSubscribeCommandHandler(registry, hub),
		commands.NewUnsubscribeCommandHandler(hub),
		queries.NewGetShipmentQueryHandler(registry),
		queries.NewListShipmentsQueryHandler(registry),
		queries.NewGetUpdateJournalQueryHandler(nil),
		logger,
	)

	doc, err := servers.GetSwagger()
	require.NoError(t, err)
	validator, err := httpadapter.NewOpenAPIValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = httpadapter.HTTPErrorHandler(logger)
	e.Use(validator)
	servers.RegisterHandlers(e, srv)
	e.GET("/track/:id", srv.TrackShipment)

	ts := httptest.NewServer(e)
	t.Cleanup(func() {
		ts.Close()
		_ = hub.Shutdown(t.Context())
	})

	return testAPI{server: ts, registry: registry, hub: hub}
}

func (a testAPI) do(t *testing.T, method, path, contentType, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (a testAPI) postUpdate(t *testing.T, record string) (*http.Response, []byte) {
	t.Helper()
	return a.do(t, http.MethodPost, "/updates", "text/plain", record)
}

func decodeShipment(t *testing.T, raw []byte) servers.Shipment {
	t.Helper()
	var s servers.Shipment
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func decodeError(t *testing.T, raw []byte) servers.Error {
	t.Helper()
	var e servers.Error
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestCreateShipment(t *testing.T) {
	api := newTestAPI(t)

	t.Run("should create shipment", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodPost, "/shipments?id=S1&type=express", "", "")

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		got := decodeShipment(t, raw)
		assert.Equal(t, "S1", got.Id)
		assert.Equal(t, "created", got.Status)
		assert.Equal(t, "Unknown", got.CurrentLocation)
		assert.Equal(t, int64(0), got.ExpectedDeliveryDateTimestamp)
		assert.Contains(t, string(raw), `"notes":[]`)
		assert.Contains(t, string(raw), `"violations":[]`)
		assert.Contains(t, string(raw), `"updateHistory":[]`)

		s, err := api.registry.Get(t.Context(), "S1")
		require.NoError(t, err)
		assert.Equal(t, shipment.Express, s.Variant())
		assert.Equal(t, testNow, s.CreatedAt())
	})

	t.Run("should default to standard", func(t *testing.T) {
		resp, _ := api.do(t, http.MethodPost, "/shipments?id=S2", "", "")

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		s, err := api.registry.Get(t.Context(), "S2")
		require.NoError(t, err)
		assert.Equal(t, shipment.Standard, s.Variant())
	})

	t.Run("should reject duplicate", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodPost, "/shipments?id=S1&type=bulk", "", "")

		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, http.StatusConflict, decodeError(t, raw).Code)
	})

	t.Run("should reject unknown variant", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodPost, "/shipments?id=S3&type=teleport", "", "")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, raw).Message, "teleport")
	})

	t.Run("should reject missing id", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodPost, "/shipments", "", "")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, raw).Code)
	})
}

func TestGetShipment(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.registry.Create(t.Context(), "S1", shipment.Standard, testNow)
	require.NoError(t, err)

	t.Run("should return snapshot", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodGet, "/shipments/S1", "", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "S1", decodeShipment(t, raw).Id)
	})

	t.Run("should return 404 for unknown shipment", func(t *testing.T) {
		resp, raw := api.do(t, http.MethodGet, "/shipments/nope", "", "")

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, http.StatusNotFound, decodeError(t, raw).Code)
	})
}

func TestListShipments(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodGet, "/shipments", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))

	for _, id := range []string{"B", "A"} {
		_, err := api.registry.Create(t.Context(), id, shipment.Standard, testNow)
		require.NoError(t, err)
	}

	resp, raw = api.do(t, http.MethodGet, "/shipments", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []servers.Shipment
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Id)
	assert.Equal(t, "B", list[1].Id)
}

func TestSubmitUpdate(t *testing.T) {
	api := newTestAPI(t)

	t.Run("should create implicitly and apply updates", func(t *testing.T) {
		resp, raw := api.postUpdate(t, "created,S1,1690000000000,overnight")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		resp, raw = api.postUpdate(t, "shipped,S1,1690000001000,1690050000000")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		got := decodeShipment(t, raw)
		assert.Equal(t, "shipped", got.Status)
		assert.Equal(t, int64(1690050000000), got.ExpectedDeliveryDateTimestamp)
		assert.Empty(t, got.Violations)
		require.Len(t, got.UpdateHistory, 2)
		assert.Equal(t, "created", got.UpdateHistory[1].PreviousStatus)
		assert.Equal(t, "shipped", got.UpdateHistory[1].NewStatus)

		resp, raw = api.postUpdate(t, "location,S1,1690000002000,Salt Lake City, UT")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Salt Lake City, UT", decodeShipment(t, raw).CurrentLocation)

		s, err := api.registry.Get(t.Context(), "S1")
		require.NoError(t, err)
		assert.Equal(t, shipment.Overnight, s.Variant())
		assert.Equal(t, int64(1690000000000), s.CreatedAt())
	})

	t.Run("should record violations", func(t *testing.T) {
		resp, raw := api.postUpdate(t, "shipped,S1,1690000003000,1690500000000")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			[]string{"Overnight shipment delivery exceeds 24-hour limit"},
			decodeShipment(t, raw).Violations)
	})

	t.Run("should reject malformed record", func(t *testing.T) {
		resp, raw := api.postUpdate(t, "shipped,S1")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, raw).Message, "malformed")
	})

	t.Run("should reject non-integer timestamp", func(t *testing.T) {
		resp, _ := api.postUpdate(t, "shipped,S1,noon")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		resp, raw := api.postUpdate(t, "teleported,S1,1")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, raw).Message, "unrecognized update kind")
	})

	t.Run("should return 404 for unknown shipment", func(t *testing.T) {
		resp, _ := api.postUpdate(t, "lost,nope,1")

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("should reject empty body", func(t *testing.T) {
		resp, _ := api.postUpdate(t, "")

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSubmitUpdate_AcceptsAnyContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{name: "no content type", contentType: ""},
		{name: "form urlencoded", contentType: "application/x-www-form-urlencoded"},
		{name: "octet stream", contentType: "application/octet-stream"},
		{name: "text with charset", contentType: "text/plain; charset=utf-8"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			api := newTestAPI(t)
			id := fmt.Sprintf("P%d", i)

			// When
			resp, raw := api.do(t, http.MethodPost, "/updates", tt.contentType, "created,"+id+",1690000000000,BULK")

			// Then
			require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
			s, err := api.registry.Get(t.Context(), id)
			require.NoError(t, err)
			assert.Equal(t, shipment.Bulk, s.Variant())
		})
	}
}

func TestSubmitUpdate_BodySizeLimit(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.registry.Create(t.Context(), "T1", shipment.Standard, testNow)
	require.NoError(t, err)
	prefix := "noteadded,T1,1690000000000,"

	t.Run("should reject oversized record without applying it", func(t *testing.T) {
		resp, raw := api.postUpdate(t, prefix+strings.Repeat("n", 70000))

		require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, http.StatusRequestEntityTooLarge, decodeError(t, raw).Code)
		s, getErr := api.registry.Get(t.Context(), "T1")
		require.NoError(t, getErr)
		assert.Empty(t, s.Snapshot().Notes)
	})

	t.Run("should accept record of exactly the limit", func(t *testing.T) {
		note := strings.Repeat("n", httpadapter.MaxUpdateRecordSize-len(prefix))

		resp, raw := api.postUpdate(t, prefix+note)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeShipment(t, raw)
		require.Len(t, got.Notes, 1)
		assert.Equal(t, note, got.Notes[0].Message)
	})
}

func TestSubmitUpdate_DeliveryRules(t *testing.T) {
	tests := []struct {
		name               string
		records            []string
		expectedStatus     string
		expectedDelivery   int64
		expectedViolations []string
	}{
		{
			name: "bulk shipped three and a half days out",
			records: []string{
				"created,s1,1690000000000,BULK",
				"shipped,s1,1690000001000,1690300000000",
			},
			expectedStatus:     "shipped",
			expectedDelivery:   1690300000000,
			expectedViolations: []string{},
		},
		{
			name: "express past date beyond the window records only the past violation",
			records: []string{
				"created,e1,1000,EXPRESS",
				"shipped,e1,2000,345601000",
			},
			expectedStatus:     "shipped",
			expectedDelivery:   345601000,
			expectedViolations: []string{"Express shipment delivery date cannot be in the past"},
		},
		{
			name: "bulk past date inside the minimum records only the past violation",
			records: []string{
				"created,b1,1690000000000,BULK",
				"shipped,b1,1690000001000,1689999000000",
			},
			expectedStatus:     "shipped",
			expectedDelivery:   1689999000000,
			expectedViolations: []string{"Bulk shipment delivery date cannot be in the past"},
		},
		{
			name: "overnight past date beyond 24 hours records only the past violation",
			records: []string{
				"created,o1,1000,OVERNIGHT",
				"delayed,o1,2000,172801000",
			},
			expectedStatus:     "delayed",
			expectedDelivery:   172801000,
			expectedViolations: []string{"Overnight shipment delivery date cannot be in the past"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			api := newTestAPI(t)

			// When
			var raw []byte
			for _, record := range tt.records {
				var resp *http.Response
				resp, raw = api.postUpdate(t, record)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
			}

			// Then
			got := decodeShipment(t, raw)
			assert.Equal(t, tt.expectedStatus, got.Status)
			assert.Equal(t, tt.expectedDelivery, got.ExpectedDeliveryDateTimestamp)
			assert.Equal(t, tt.expectedViolations, got.Violations)
			require.NotEmpty(t, got.UpdateHistory)
			last := got.UpdateHistory[len(got.UpdateHistory)-1]
			assert.Equal(t, "created", last.PreviousStatus)
			assert.Equal(t, tt.expectedStatus, last.NewStatus)
		})
	}
}

func TestGetShipmentJournal(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.registry.Create(t.Context(), "S1", shipment.Standard, testNow)
	require.NoError(t, err)

	resp, raw := api.do(t, http.MethodGet, "/shipments/S1/journal", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))

	resp, _ = api.do(t, http.MethodGet, "/shipments/nope/journal", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodGet, "/nowhere", "", "")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, decodeError(t, raw).Code)
}
