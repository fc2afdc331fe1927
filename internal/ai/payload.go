package ai

import (
	"errors"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSONPayload pulls the structured payload out of a model response.
// The first fenced block, if present, takes precedence over the whole body.
// Every stage parses responses through this single routine so that schema
// drift is handled in one place.
func ExtractJSONPayload(raw string) ([]byte, error) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if body := strings.TrimSpace(m[1]); body != "" {
			return []byte(body), nil
		}
	}

	body := strings.TrimSpace(raw)
	if body == "" {
		return nil, errors.New("empty model response")
	}

	// Tolerate leading prose before the object itself
	if i := strings.IndexAny(body, "{["); i > 0 {
		body = body[i:]
	}
	if !strings.HasPrefix(body, "{") && !strings.HasPrefix(body, "[") {
		return nil, errors.New("response contains no JSON payload")
	}

	return []byte(body), nil
}
