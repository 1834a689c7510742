package watermark

import (
	"reflect"
	"testing"
)

func TestStampEmbedsRecoverableID(t *testing.T) {
	const id = "TRUAI_1735000000_AB12CD34EF"

	stamped := Stamp("func main() {}", id)
	result := Verify(stamped)

	if !result.Originated {
		t.Fatal("stamped text should verify as originated")
	}
	if !reflect.DeepEqual(result.ForensicIDs, []string{id}) {
		t.Fatalf("forensic ids = %v, want [%s]", result.ForensicIDs, id)
	}
}

func TestStampIsIdempotent(t *testing.T) {
	const id = "TRUAI_1735000000_AB12CD34EF"

	once := Stamp("hello", id)
	twice := Stamp(once, id)
	if once != twice {
		t.Fatalf("double stamp changed text:\n%q\n%q", once, twice)
	}
}

func TestStampEmptyIDIsNoop(t *testing.T) {
	if got := Stamp("hello", ""); got != "hello" {
		t.Fatalf("Stamp with empty id = %q", got)
	}
}

func TestVerifyCleanTextNotOriginated(t *testing.T) {
	result := Verify("just some text mentioning TRUAI in prose, and truai_123_abc lowercase")
	if result.Originated {
		t.Fatal("clean text should not verify as originated")
	}
	if len(result.ForensicIDs) != 0 {
		t.Fatalf("forensic ids = %v, want empty", result.ForensicIDs)
	}
}

func TestVerifyPreservesFirstOccurrenceOrder(t *testing.T) {
	text := "a TRUAI_2_BBB b TRUAI_1_AAA c TRUAI_2_BBB"
	result := Verify(text)
	want := []string{"TRUAI_2_BBB", "TRUAI_1_AAA"}
	if !reflect.DeepEqual(result.ForensicIDs, want) {
		t.Fatalf("forensic ids = %v, want %v", result.ForensicIDs, want)
	}
}

func TestVerifyIsIdempotent(t *testing.T) {
	text := Stamp("output", "TRUAI_42_ZZ99")
	a := Verify(text)
	b := Verify(text)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("verify not idempotent: %v vs %v", a, b)
	}
}
