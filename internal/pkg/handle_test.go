package pkg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme", "acme"},
		{"acme_team-1", "acme_team-1"},
		{"Acme Corp!", "acme-corp-"},
		{"  Padded ", "padded"},
		{"café", "caf-"},
		{"a.b/c", "a-b-c"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeHandle(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, HandlePattern, got)
			assert.Equal(t, got, SanitizeHandle(got), "sanitize must be idempotent")
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vizio Engineering", "vizio-engineering"},
		{"  Crème Brûlée  Ops ", "creme-brulee-ops"},
		{"R&D -- Lab", "r-d-lab"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeHandle(got))
		})
	}
}

func TestSlugify_Concurrent(t *testing.T) {
	const workers, calls = 16, 500
	var wg sync.WaitGroup
	bad := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				if got := Slugify("Crème Brûlée Ops"); got != "creme-brulee-ops" {
					bad <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(bad)
	for got := range bad {
		t.Errorf("unexpected slug %q", got)
	}
}

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode()
		assert.NoError(t, err)
		assert.Len(t, code, InviteCodeLen)
		assert.Regexp(t, `^[a-z0-9]+$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}
