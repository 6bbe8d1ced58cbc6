package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/tsawler/inkgraph/model"
)

// rawDetection is the wire shape of one detection
type rawDetection struct {
	Text       string      `json:"text"`
	BBox       []float64   `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Kind       string      `json:"kind"`
	ShapeType  string      `json:"shapeType"`
	Endpoints  [][]float64 `json:"endpoints"`
}

// Decode parses a JSON array of detections into validated model values.
// Entries that fail to parse or violate the detection invariants are
// skipped and reported as warnings; the rest of the batch proceeds. An
// empty array is valid and yields no detections.
//
// Decode returns an error only when the payload is not a JSON array.
func Decode(data []byte) ([]model.Detection, []model.Warning, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("detection payload is not a JSON array: %w", err)
	}

	var dets []model.Detection
	var warnings []model.Warning

	for i, entry := range entries {
		det, code, err := decodeOne(entry)
		if err != nil {
			warnings = append(warnings, model.Warningf(code,
				"entry %d skipped: %v", i, err))
			continue
		}
		dets = append(dets, det)
	}

	return dets, warnings, nil
}

// decodeOne converts one wire entry into a validated detection. On
// failure it also returns the warning code classifying the defect: an
// unrecognized kind discriminator gets its own code so callers can
// distinguish forward-compatibility gaps from plain bad data.
func decodeOne(entry json.RawMessage) (model.Detection, string, error) {
	var raw rawDetection
	if err := json.Unmarshal(entry, &raw); err != nil {
		return model.Detection{}, model.WarnMalformedDetection, fmt.Errorf("not a detection object: %w", err)
	}

	kind, err := model.ParseDetectionKind(raw.Kind)
	if err != nil {
		return model.Detection{}, model.WarnUnknownKind, err
	}

	if len(raw.BBox) != 4 {
		return model.Detection{}, model.WarnMalformedDetection, fmt.Errorf("bbox has %d coordinates, want 4", len(raw.BBox))
	}

	det := model.Detection{
		Text:       raw.Text,
		BBox:       model.BBox{X1: raw.BBox[0], Y1: raw.BBox[1], X2: raw.BBox[2], Y2: raw.BBox[3]},
		Confidence: raw.Confidence,
		Kind:       kind,
		Shape:      model.ParseShapeType(raw.ShapeType),
	}

	if kind == model.KindArrow && len(raw.Endpoints) > 0 {
		if len(raw.Endpoints) != 2 || len(raw.Endpoints[0]) != 2 || len(raw.Endpoints[1]) != 2 {
			return model.Detection{}, model.WarnMalformedDetection, fmt.Errorf("arrow endpoints must be two [x,y] pairs")
		}
		det.Endpoints = [2]model.Point{
			{X: raw.Endpoints[0][0], Y: raw.Endpoints[0][1]},
			{X: raw.Endpoints[1][0], Y: raw.Endpoints[1][1]},
		}
	}

	if err := det.Validate(); err != nil {
		return model.Detection{}, model.WarnMalformedDetection, err
	}

	return det, "", nil
}
