package projection

import "time"

// GeoJSON feature wrapping for persisted checkpoints. Coordinate order is
// [lon, lat]; callers must not transpose.

type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type CheckpointProperties struct {
	Category         string     `json:"category"`
	Name             string     `json:"name"`
	Note             string     `json:"note,omitempty"`
	EstimatedArrival *time.Time `json:"estimated_arrival"`
	OffsetSeconds    *int       `json:"time_offset_seconds"`
	OrderIndex       int        `json:"order_index"`
}

type CheckpointFeature struct {
	Type       string               `json:"type"`
	Geometry   PointGeometry        `json:"geometry"`
	Properties CheckpointProperties `json:"properties"`
}

func Feature(cp Checkpoint) CheckpointFeature {
	return CheckpointFeature{
		Type: "Feature",
		Geometry: PointGeometry{
			Type:        "Point",
			Coordinates: [2]float64{cp.Lon, cp.Lat},
		},
		Properties: CheckpointProperties{
			Category:         "waypoint",
			Name:             cp.Name,
			Note:             cp.Note,
			EstimatedArrival: cp.EstimatedArrival,
			OffsetSeconds:    cp.OffsetSeconds,
			OrderIndex:       cp.OrderIndex,
		},
	}
}

func Features(cps []Checkpoint) []CheckpointFeature {
	features := make([]CheckpointFeature, 0, len(cps))
	for _, cp := range cps {
		features = append(features, Feature(cp))
	}
	return features
}
