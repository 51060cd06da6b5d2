package ambient

import (
	"context"
	"errors"

	"NudgePrototype/internal/apperr"
	"NudgePrototype/internal/maps"
)

const (
	BackdropMap      = "map"
	BackdropFallback = "fallback"
)

// 기기 위치. Denied면 좌표는 무시됨
type DeviceLocation struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Denied bool    `json:"denied"`
}

// Backdrop tells the client how to paint the area behind the radar.
type Backdrop struct {
	Mode   string      `json:"mode"`
	Center maps.LatLng `json:"center"`
	Zoom   int         `json:"zoom"`
	// Reason is set whenever something degraded: denied location or an unavailable map service.
	Reason string `json:"reason,omitempty"`
}

// Prober checks that the map tile service can serve a centre.
type Prober interface {
	Probe(ctx context.Context, center maps.LatLng) error
}

// ResolveBackdrop never fails: every external problem degrades to the fallback.
func ResolveBackdrop(ctx context.Context, prober Prober, loc *DeviceLocation, defaultCenter maps.LatLng, zoom int) Backdrop {
	b := Backdrop{Mode: BackdropMap, Center: defaultCenter, Zoom: zoom}
	switch {
	case loc == nil:
		b.Reason = "location unavailable"
	case loc.Denied:
		b.Reason = "location permission denied"
	default:
		b.Center = maps.LatLng{Lat: loc.Lat, Lng: loc.Lng}
	}

	if prober == nil {
		b.Mode = BackdropFallback
		b.Reason = joinReason(b.Reason, "map service not configured")
		return b
	}
	if err := prober.Probe(ctx, b.Center); err != nil {
		b.Mode = BackdropFallback
		if errors.Is(err, apperr.ErrExternalServiceUnavailable) {
			b.Reason = joinReason(b.Reason, err.Error())
		} else {
			b.Reason = joinReason(b.Reason, "map service unavailable")
		}
	}
	return b
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
