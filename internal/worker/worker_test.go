package worker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func overspendingState() map[string]any {
	return map[string]any{
		"income":   []any{map[string]any{"id": "inc-1", "amount": 1000.0, "category": "Salary"}},
		"expenses": []any{map[string]any{"id": "exp-1", "amount": 1500.0, "category": "Rent"}},
	}
}

func findingIDs(resp worker.Response) []string {
	ids := make([]string, 0, len(resp.Findings))
	for _, f := range resp.Findings {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestHandleMessage_Valid(t *testing.T) {
	resp := worker.HandleMessage(worker.Message{CurrentCollectionsState: overspendingState()}, fixedNow)

	assert.Nil(t, resp.Error)
	assert.Contains(t, findingIDs(resp), "negative-cash-flow")
	assert.Contains(t, findingIDs(resp), "no-active-goals")
}

func TestResponse_ErrorAlwaysSerialized(t *testing.T) {
	ok := worker.HandleMessage(worker.Message{CurrentCollectionsState: overspendingState()}, fixedNow)
	raw, err := json.Marshal(ok)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	errField, present := body["error"]
	assert.True(t, present)
	assert.Nil(t, errField)

	bad := worker.HandleMessage(worker.Message{CurrentCollectionsState: map[string]any{"income": "not a list"}}, fixedNow)
	raw, err = json.Marshal(bad)
	require.NoError(t, err)
	body = map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotNil(t, body["error"])
	assert.Equal(t, []any{}, body["findings"])
}

func TestHandleMessage_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing state", payload: nil},
		{name: "wrong shape", payload: map[string]any{"income": "not a list"}},
		{name: "negative amount", payload: map[string]any{
			"expenses": []any{map[string]any{"id": "exp-1", "amount": -5.0}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := worker.HandleMessage(worker.Message{CurrentCollectionsState: tt.payload}, fixedNow)
			require.NotNil(t, resp.Error)
			assert.Equal(t, apperrors.KindValidation, resp.Error.Kind)
			assert.True(t, resp.Error.Recoverable)
			assert.NotNil(t, resp.Findings)
			assert.Empty(t, resp.Findings)
		})
	}
}

func TestFindingsWorker_RespondsInOrderWithCorrelationIDs(t *testing.T) {
	w := worker.New(worker.WithClock(func() time.Time { return fixedNow }), worker.WithQueueSize(4))
	defer w.Close()

	ctx := context.Background()
	firstID, first, err := w.Submit(ctx, worker.Message{CurrentCollectionsState: overspendingState()})
	require.NoError(t, err)
	secondID, second, err := w.Submit(ctx, worker.Message{CurrentCollectionsState: map[string]any{"income": 7}})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	r1 := <-first
	r2 := <-second
	assert.Equal(t, firstID, r1.CorrelationID)
	assert.Nil(t, r1.Error)
	assert.Equal(t, secondID, r2.CorrelationID)
	require.NotNil(t, r2.Error)
}

func TestFindingsWorker_Evaluate(t *testing.T) {
	w := worker.New(worker.WithClock(func() time.Time { return fixedNow }))
	defer w.Close()

	resp, err := w.Evaluate(context.Background(), worker.Message{CurrentCollectionsState: overspendingState()})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.CorrelationID)
	assert.Contains(t, findingIDs(resp), "negative-cash-flow")
}

func TestFindingsWorker_SubmitAfterClose(t *testing.T) {
	w := worker.New()
	w.Close()
	w.Close()

	_, _, err := w.Submit(context.Background(), worker.Message{})
	assert.ErrorIs(t, err, worker.ErrClosed)
}
