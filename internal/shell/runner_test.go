package shell

import (
	"strings"
	"testing"
)

func TestBoundedBuffer(t *testing.T) {
	t.Run("keeps writes under the limit", func(t *testing.T) {
		buf := &boundedBuffer{limit: 16}
		n, err := buf.Write([]byte("hello"))
		if err != nil || n != 5 {
			t.Fatalf("unexpected write result: %d, %v", n, err)
		}
		if buf.String() != "hello" {
			t.Errorf("expected hello, got %q", buf.String())
		}
	})

	t.Run("truncates at the limit without failing the writer", func(t *testing.T) {
		buf := &boundedBuffer{limit: 8}
		payload := strings.Repeat("x", 100)

		n, err := buf.Write([]byte(payload))
		if err != nil {
			t.Fatalf("writes must never fail: %v", err)
		}
		if n != len(payload) {
			t.Errorf("expected full consumption (%d), got %d", len(payload), n)
		}
		if got := buf.String(); len(got) != 8 {
			t.Errorf("expected 8 retained bytes, got %d", len(got))
		}
	})

	t.Run("subsequent writes after the limit are discarded", func(t *testing.T) {
		buf := &boundedBuffer{limit: 4}
		buf.Write([]byte("abcd"))
		buf.Write([]byte("efgh"))
		if buf.String() != "abcd" {
			t.Errorf("expected abcd, got %q", buf.String())
		}
	})
}
