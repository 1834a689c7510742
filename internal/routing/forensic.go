package routing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ForensicPrefix starts every provenance token this engine mints.
const ForensicPrefix = "TRUAI"

// MintForensicID returns a fresh provenance token of the form
// TRUAI_<unixtime>_<random-alnum>, uppercased. Minted once per routed
// task and never reused; uniqueness comes from the random suffix, not
// the timestamp.
func MintForensicID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:10]
	return fmt.Sprintf("%s_%d_%s", ForensicPrefix, time.Now().Unix(), suffix)
}
