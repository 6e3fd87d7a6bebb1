package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient(client)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	job := Job{
		Type:         TypeBookingConfirmation,
		To:           "dana@example.com",
		Name:         "Dana",
		SessionStart: start,
		Location:     "Main floor",
		MachineName:  "Tower 1",
	}

	mock.Regexp().ExpectLPush(queueKey, `.+`).SetVal(1)
	mock.ExpectLLen(queueKey).SetVal(1)

	err := svc.Enqueue(context.Background(), job)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueRedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient(client)

	mock.Regexp().ExpectLPush(queueKey, `.+`).SetErr(assert.AnError)

	err := svc.Enqueue(context.Background(), Job{Type: TypeCancellation, To: "dana@example.com"})
	assert.Error(t, err)
}

func TestComposeConfirmation(t *testing.T) {
	svc := &Service{}

	subject, body := svc.compose(Job{
		Type:         TypeBookingConfirmation,
		Name:         "Dana",
		SessionStart: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Location:     "Main floor",
		MachineName:  "Tower 1",
	})

	assert.Contains(t, subject, "booked")
	assert.Contains(t, body, "Dana")
	assert.Contains(t, body, "Tower 1")
}

func TestComposeCancellation(t *testing.T) {
	svc := &Service{}

	subject, body := svc.compose(Job{
		Type:     TypeCancellation,
		Name:     "Dana",
		Location: "Main floor",
	})

	assert.Contains(t, subject, "cancelled")
	assert.Contains(t, body, "cancelled")
}

func TestJobRoundTrip(t *testing.T) {
	job := Job{
		Type:    TypeBookingConfirmation,
		To:      "dana@example.com",
		Name:    "Dana",
		Tries:   1,
		Created: time.Now().UTC(),
	}

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var decoded Job
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, job.To, decoded.To)
	assert.Equal(t, job.Tries, decoded.Tries)
}
