package docid_test

import (
	"testing"

	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParse_RoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	parsed, err := docid.Parse(docid.Format(id))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip: got %s, want %s", parsed.Hex(), id.Hex())
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"not-an-id",
		"abc123",                    // too short
		"zzzzzzzzzzzzzzzzzzzzzzzz",  // bad charset
		"0123456789abcdef0123456789", // wrong length
	}
	for _, in := range cases {
		if _, err := docid.Parse(in); err != docid.ErrInvalidID {
			t.Errorf("Parse(%q): got %v, want ErrInvalidID", in, err)
		}
	}
}

func TestParseAll(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids, err := docid.ParseAll([]string{a.Hex(), b.Hex()})
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("ParseAll: got %v, want [%s %s]", ids, a.Hex(), b.Hex())
	}

	if _, err := docid.ParseAll([]string{a.Hex(), "bogus"}); err != docid.ErrInvalidID {
		t.Errorf("ParseAll with bad entry: got %v, want ErrInvalidID", err)
	}
}
