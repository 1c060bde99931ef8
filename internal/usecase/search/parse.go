package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/lead"
)

// placeDTO is the element shape the prompt asks the provider for.
type placeDTO struct {
	Name      looseString `json:"nome"`
	Phone     looseString `json:"telefone"`
	Email     looseString `json:"email"`
	Instagram looseString `json:"instagram"`
	Facebook  looseString `json:"facebook"`
	LinkedIn  looseString `json:"linkedin"`
}

// looseString accepts strings, numbers, booleans and null. An array yields its
// first non-empty scalar; an object yields "". Contact fields never fail a record.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null" || strings.HasPrefix(raw, "{"):
		*s = ""
	case strings.HasPrefix(raw, "["):
		var items []looseString
		if err := json.Unmarshal(b, &items); err != nil {
			return err //nolint:wrapcheck // wrapped by the caller
		}
		*s = ""
		for _, it := range items {
			if it != "" {
				*s = it
				break
			}
		}
	case strings.HasPrefix(raw, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err //nolint:wrapcheck // wrapped by the caller
		}
		*s = looseString(v)
	case raw == "true" || raw == "false":
		*s = looseString(raw)
	default:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("unsupported value %s", raw)
		}
		*s = looseString(raw)
	}
	return nil
}

// extractJSONArray returns the text between the first '[' and the last ']'.
func extractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", domain.ErrNoJSONArray
	}
	return text[start : end+1], nil
}

// parseRecords turns a provider response into records.
func parseRecords(text string) ([]lead.Record, error) {
	payload, err := extractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var items []*placeDTO
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}

	records := make([]lead.Record, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		records = append(records, lead.New(string(it.Name), lead.Contacts{
			Phone:     string(it.Phone),
			Email:     string(it.Email),
			Instagram: string(it.Instagram),
			Facebook:  string(it.Facebook),
			LinkedIn:  string(it.LinkedIn),
		}))
	}
	return records, nil
}
