package profile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// codecVersion is the current payload envelope version. Bump only with
// a migration path for older payloads.
const codecVersion = 1

// ErrDecode marks a payload that could not be decoded into a profile.
// Callers treat it as "absent" for single-record reads and as "skip
// this entry" for bulk listings.
var ErrDecode = errors.New("undecodable profile payload")

type envelope struct {
	V       int     `json:"v"`
	Profile Profile `json:"profile"`
}

// Encode serializes a profile into its versioned payload form.
func Encode(p Profile) ([]byte, error) {
	data, err := json.Marshal(envelope{V: codecVersion, Profile: p})
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return data, nil
}

// Decode parses a versioned payload back into a profile. Any failure
// (malformed JSON, wrong envelope version, missing id) wraps ErrDecode.
func Decode(data []byte) (Profile, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if env.V != codecVersion {
		return Profile{}, fmt.Errorf("%w: unsupported version %d", ErrDecode, env.V)
	}
	if env.Profile.ID == "" {
		return Profile{}, fmt.Errorf("%w: missing profile id", ErrDecode)
	}
	return env.Profile, nil
}
