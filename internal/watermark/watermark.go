// Package watermark embeds and recovers forensic identifiers in
// AI-produced text.
package watermark

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/truai/governor/internal/model"
)

// forensicRe matches minted provenance tokens wherever they appear in
// an artifact, however the host rendered the surrounding text.
var forensicRe = regexp.MustCompile(`TRUAI_\d+_[A-Z0-9]+`)

// Stamp embeds the forensic id as a trailing provenance marker line.
// Deterministic and idempotent: stamping text that already carries the
// id returns it unchanged.
func Stamp(text, forensicID string) string {
	if forensicID == "" || strings.Contains(text, forensicID) {
		return text
	}
	return fmt.Sprintf("%s\n[provenance: %s]", text, forensicID)
}

// Verify scans the artifact for forensic tokens and reports every
// distinct match in order of first occurrence. Side-effect free and
// idempotent; it never touches the audit trail.
func Verify(artifact string) model.VerificationResult {
	matches := forensicRe.FindAllString(artifact, -1)

	seen := make(map[string]bool, len(matches))
	ids := []string{}
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			ids = append(ids, m)
		}
	}

	return model.VerificationResult{
		Originated:  len(ids) > 0,
		ForensicIDs: ids,
	}
}
