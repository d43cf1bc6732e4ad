package service

import (
	"testing"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/stretchr/testify/require"
)

func shippedOrder(shippedAt time.Time) *model.Order {
	order := &model.Order{
		OrderCode:      "12345678",
		TrackingNumber: "FL-0000000001",
	}
	order.UpdatedAt = shippedAt
	return order
}

func TestBuildTrackingInfo_DayProgression(t *testing.T) {
	shippedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		now      time.Time
		status   string
		progress int
		done     int
	}{
		{"day zero", shippedAt.Add(2 * time.Hour), ShippingStatusProcessing, 25, 1},
		{"day one", shippedAt.AddDate(0, 0, 1).Add(time.Hour), ShippingStatusInTransit, 50, 2},
		{"day two", shippedAt.AddDate(0, 0, 2).Add(time.Hour), ShippingStatusOutForDelivery, 75, 3},
		{"day three", shippedAt.AddDate(0, 0, 3).Add(time.Hour), ShippingStatusDelivered, 100, 4},
		{"well past delivery stays delivered", shippedAt.AddDate(0, 0, 30), ShippingStatusDelivered, 100, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := buildTrackingInfo(shippedOrder(shippedAt), tc.now)

			require.Equal(t, tc.status, info.Status)
			require.Equal(t, tc.progress, info.Progress)
			require.Len(t, info.Timeline, 4)

			done := 0
			for _, step := range info.Timeline {
				if step.Done {
					done++
					require.NotNil(t, step.At)
				} else {
					require.Nil(t, step.At)
				}
			}
			require.Equal(t, tc.done, done)
		})
	}
}

func TestBuildTrackingInfo_ClockSkewClampsToDayZero(t *testing.T) {
	shippedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	info := buildTrackingInfo(shippedOrder(shippedAt), shippedAt.Add(-time.Hour))

	require.Equal(t, ShippingStatusProcessing, info.Status)
	require.Equal(t, 25, info.Progress)
}

func TestBuildTrackingInfo_TimelineTimestamps(t *testing.T) {
	shippedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	info := buildTrackingInfo(shippedOrder(shippedAt), shippedAt.AddDate(0, 0, 3))

	for i, step := range info.Timeline {
		require.True(t, step.Done)
		require.Equal(t, shippedAt.AddDate(0, 0, i), *step.At)
	}
	require.Equal(t, "FL-0000000001", info.TrackingNumber)
	require.Equal(t, "12345678", info.OrderCode)
	require.Equal(t, shippedAt, info.ShippedAt)
}

func TestGetCarriers(t *testing.T) {
	svc := &ShippingService{}
	list := svc.GetCarriers()

	require.Len(t, list, 3)
	for _, c := range list {
		require.NotEmpty(t, c.Code)
		require.NotEmpty(t, c.Name)
		require.Positive(t, c.DeliveryDays)
	}
}
