package mceln

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-uuid"
)

// GenerateElabID returns the external identifier stamped on every
// experiment: the record's date followed by 40 hex characters of randomness,
// e.g. "20260830-1f0c...". The id is what gets printed on labels and cited
// in other systems, so it never changes after creation.
func GenerateElabID(now time.Time) (string, error) {
	randomBytes, err := uuid.GenerateRandomBytes(20)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%x", now.Format("20060102"), randomBytes), nil
}
