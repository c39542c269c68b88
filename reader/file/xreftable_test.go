package file

import (
	"os"
	"testing"
)

func TestXrefStream(t *testing.T) {
	src, err := os.Open("../test/corpus/UTF-32.pdf")
	if err != nil {
		if os.IsNotExist(err) {
			t.Skip("missing test file")
		}
		t.Fatal(err)
	}
	defer src.Close()

	ctx, err := processFile(src, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(ctx.xrefTable.objects) == 0 {
		t.Fatal("expected a non empty xref table")
	}

	for obj, entry := range ctx.xrefTable.objects {
		if entry.free {
			continue
		}
		if entry.offset == 0 && entry.streamObjectNumber == 0 {
			t.Fatalf("object %d has no valid location", obj.ObjectNumber)
		}
	}
}
