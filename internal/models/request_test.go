package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func validRequest() PickupRequest {
	return PickupRequest{
		ID:            "r1",
		UserID:        "u1",
		User:          UserRef{ID: "u1", Username: "amina", Email: "amina@example.com"},
		ItemType:      "Laptop",
		Quantity:      2,
		PickupAddress: "12 Ocean Rd",
		PickupDate:    NewDate(2024, time.March, 15),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestValidateCollectorRole(t *testing.T) {
	req := validRequest()
	cid := "c1"
	req.CollectorID = &cid

	err := req.Validate("user", now)
	assert.ErrorIs(t, err, ErrCollectorRole)

	assert.NoError(t, req.Validate("collector", now))
}

func TestValidateCollectorRequired(t *testing.T) {
	for _, status := range []string{StatusAssigned, StatusCompleted} {
		req := validRequest()
		req.Status = status
		err := req.Validate("", now)
		assert.ErrorIs(t, err, ErrCollectorRequired, status)
	}

	// terminal-but-unassigned cancelled is fine
	req := validRequest()
	req.Status = StatusCancelled
	assert.NoError(t, req.Validate("", now))
}

func TestValidateBackfillsCompletedAt(t *testing.T) {
	req := validRequest()
	cid := "c1"
	req.CollectorID = &cid
	req.Status = StatusCompleted
	require.Nil(t, req.CompletedAt)

	require.NoError(t, req.Validate("collector", now))
	require.NotNil(t, req.CompletedAt)
	assert.Equal(t, now, *req.CompletedAt)
}

func TestMarkHelpers(t *testing.T) {
	req := validRequest()
	collector := User{ID: "c1", Username: "zuber", Email: "zuber@example.com"}

	req.MarkAssigned(collector, now)
	assert.Equal(t, StatusAssigned, req.Status)
	require.NotNil(t, req.CollectorID)
	assert.Equal(t, "c1", *req.CollectorID)
	assert.Equal(t, now, *req.AssignedAt)
	assert.Equal(t, "zuber", req.Collector.Username)

	req.MarkCompleted(now.Add(time.Hour))
	assert.Equal(t, StatusCompleted, req.Status)
	assert.Equal(t, now.Add(time.Hour), *req.CompletedAt)
}

// Serialization round-trip keeps every field, including the nulls of an
// unassigned request.
func TestRequestJSONRoundTrip(t *testing.T) {
	req := validRequest()
	req.Notes = "handle with care"

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"pickup_date":"2024-03-15"`)
	assert.Contains(t, string(b), `"assigned_collector":null`)
	assert.Contains(t, string(b), `"assigned_at":null`)
	assert.Contains(t, string(b), `"completed_at":null`)

	var got PickupRequest
	require.NoError(t, json.Unmarshal(b, &got))
	got.UserID = req.UserID // not serialized; joined on read
	assert.Equal(t, req, got)
}

func TestRequestJSONAssigned(t *testing.T) {
	req := validRequest()
	req.MarkAssigned(User{ID: "c1", Username: "zuber", Email: "zuber@example.com"}, now)

	b, err := json.Marshal(req)
	require.NoError(t, err)

	var got PickupRequest
	require.NoError(t, json.Unmarshal(b, &got))
	require.NotNil(t, got.Collector)
	assert.Equal(t, "zuber", got.Collector.Username)
	require.NotNil(t, got.AssignedAt)
	assert.True(t, got.AssignedAt.Equal(now))
}

func TestDateParsing(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	today := Today(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC))
	assert.False(t, today.Before(NewDate(2024, time.March, 10)))
	assert.True(t, NewDate(2024, time.March, 9).Before(today))
}
