package handler

import (
	"time"

	dErrors "shiftwise/pkg/domain-errors"
)

// ListQuery holds the parsed query parameters for GET /entries.
type ListQuery struct {
	From time.Time
	To   time.Time
}

func parseListQuery(fromRaw, toRaw string) (ListQuery, error) {
	if fromRaw == "" || toRaw == "" {
		return ListQuery{}, dErrors.New(dErrors.CodeValidation, "from and to query parameters are required")
	}
	from, err := time.Parse(time.RFC3339, fromRaw)
	if err != nil {
		return ListQuery{}, dErrors.New(dErrors.CodeValidation, "from must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, toRaw)
	if err != nil {
		return ListQuery{}, dErrors.New(dErrors.CodeValidation, "to must be an RFC 3339 timestamp")
	}
	return ListQuery{From: from, To: to}, nil
}
