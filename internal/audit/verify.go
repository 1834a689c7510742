package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// VerifyResult holds the outcome of a hash chain verification.
type VerifyResult struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// VerifyChain reads a JSONL sink file and validates the hash chain and
// id sequence. Returns Valid=true if intact, or details about the
// first broken link.
func VerifyChain(path string) VerifyResult {
	f, err := os.Open(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	var prevLine []byte

	for scanner.Scan() {
		lineNum++
		raw := scanner.Bytes()

		// Scanner reuses its buffer; keep a copy for the next round.
		line := make([]byte, len(raw))
		copy(line, raw)

		var cl chainedLine
		if err := json.Unmarshal(line, &cl); err != nil {
			return VerifyResult{
				Error:     fmt.Sprintf("parse error: %v", err),
				ErrorLine: lineNum,
			}
		}

		if cl.ID != int64(lineNum) {
			return VerifyResult{
				Error:     fmt.Sprintf("id gap: entry id %d at line %d", cl.ID, lineNum),
				ErrorLine: lineNum,
			}
		}

		if lineNum == 1 {
			if cl.PrevHash != GenesisHash {
				return VerifyResult{
					Error:     fmt.Sprintf("first entry prev_hash is %q, expected genesis hash", cl.PrevHash),
					ErrorLine: 1,
				}
			}
		} else if want := HashLine(prevLine); cl.PrevHash != want {
			return VerifyResult{
				Error:     fmt.Sprintf("hash mismatch: expected %s, got %s", want, cl.PrevHash),
				ErrorLine: lineNum,
			}
		}

		prevLine = line
	}

	if err := scanner.Err(); err != nil {
		return VerifyResult{Error: fmt.Sprintf("scan: %v", err)}
	}
	return VerifyResult{Valid: true, Lines: lineNum}
}
