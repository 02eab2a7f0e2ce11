package ingest

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
)

// IDDecoding is the outcome of reading a platform id out of a create response.
// It is either Decoded(id) with id > 0, or Undecodable.
type IDDecoding struct {
	id int64
	ok bool
}

// Undecodable is the IDDecoding for payloads that carry no usable id.
var Undecodable = IDDecoding{}

// Decoded wraps a positive platform id. Non-positive ids are Undecodable.
func Decoded(id int64) IDDecoding {
	if id <= 0 {
		return Undecodable
	}
	return IDDecoding{id: id, ok: true}
}

// ID returns the decoded id and whether decoding succeeded.
func (d IDDecoding) ID() (int64, bool) { return d.id, d.ok }

var idPattern = regexp.MustCompile(`"id"\s*:\s*(\d+)`)

// DecodePlatformID reads the new platform's id from a CreatePlatform payload.
//
// The directory is expected to answer with a JSON object carrying a numeric
// "id". Some deployments answer with the object serialised inside a JSON
// string, or with plain text; for those the first `"id": <digits>` in the text
// is used.
func DecodePlatformID(payload []byte) IDDecoding {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return Undecodable
	}

	var text string
	switch {
	case payload[0] == '"':
		if err := json.Unmarshal(payload, &text); err != nil {
			return Undecodable
		}
	case json.Valid(payload):
		return decodeObject(payload)
	default:
		text = string(payload)
	}

	m := idPattern.FindStringSubmatch(text)
	if m == nil {
		return Undecodable
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Undecodable
	}
	return Decoded(id)
}

func decodeObject(payload []byte) IDDecoding {
	var obj struct {
		ID *json.Number `json:"id"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil || obj.ID == nil {
		return Undecodable
	}
	id, err := obj.ID.Int64()
	if err != nil {
		return Undecodable
	}
	return Decoded(id)
}
