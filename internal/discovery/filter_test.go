package discovery

import "testing"

var sampleFiles = []string{
	"/proj/tests/unit/test_user.py",
	"/proj/tests/unit/test_payment.py",
	"/proj/tests/integration/test_order.py",
}

func TestFilter_Apply(t *testing.T) {
	t.Run("no globs keeps everything", func(t *testing.T) {
		f := NewFilter(nil, nil)
		if got := f.Apply(sampleFiles); len(got) != 3 {
			t.Errorf("expected all files, got %d", len(got))
		}
	})

	t.Run("include globs narrow the set", func(t *testing.T) {
		f := NewFilter([]string{"test_user*"}, nil)
		got := f.Apply(sampleFiles)
		if len(got) != 1 || got[0] != sampleFiles[0] {
			t.Errorf("expected only test_user.py, got %v", got)
		}
	})

	t.Run("exclude globs drop matches", func(t *testing.T) {
		f := NewFilter(nil, []string{"test_payment*"})
		got := f.Apply(sampleFiles)
		if len(got) != 2 {
			t.Errorf("expected 2 files, got %v", got)
		}
		for _, file := range got {
			if file == sampleFiles[1] {
				t.Error("test_payment.py should have been excluded")
			}
		}
	})
}

func TestFilter_FilterByName(t *testing.T) {
	f := NewFilter(nil, nil)

	t.Run("empty pattern keeps everything", func(t *testing.T) {
		if got := f.FilterByName(sampleFiles, ""); len(got) != 3 {
			t.Errorf("expected all files, got %d", len(got))
		}
	})

	t.Run("wildcard pattern", func(t *testing.T) {
		got := f.FilterByName(sampleFiles, "test_p*")
		if len(got) != 1 || got[0] != sampleFiles[1] {
			t.Errorf("expected test_payment.py, got %v", got)
		}
	})

	t.Run("loose wildcard pattern matches anywhere", func(t *testing.T) {
		got := f.FilterByName(sampleFiles, "*payment*")
		if len(got) != 1 {
			t.Errorf("expected 1 file, got %v", got)
		}
	})

	t.Run("plain pattern is a substring match", func(t *testing.T) {
		got := f.FilterByName(sampleFiles, "order")
		if len(got) != 1 || got[0] != sampleFiles[2] {
			t.Errorf("expected test_order.py, got %v", got)
		}
	})
}
