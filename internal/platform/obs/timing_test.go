package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc")

	func() (err error) {
		defer Time(ctx, "test.op")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	if !strings.Contains(out, "req_id=abc") || !strings.Contains(out, "op=test.op") || !strings.Contains(out, "err=boom") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestRequestIDDefault(t *testing.T) {
	if got := RequestID(context.Background()); got != "-" {
		t.Fatalf("RequestID = %q, want -", got)
	}
}
