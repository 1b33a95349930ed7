//go:build unit

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pantai Indah", "pantai-indah"},
		{"Pantai Indah Utara", "pantai-indah-utara"},
		{"Café Central!", "cafe-central"},
		{"  --Mie   Aceh__Spesial-- ", "mie-aceh-spesial"},
		{"Kopi Gayo 100%", "kopi-gayo-100"},
		{"!!!", ""},
		{"", ""},
		{"Ñandú Über", "nandu-uber"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{"Pantai Indah", "Café Central!", "a--b", "Masjid Raya Baiturrahman (1881)", "ÀÉÎÕÜ"}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make should be idempotent for %q", in)
		assert.Equal(t, once, Make(in), "Make should be deterministic for %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("pantai-indah"))
	assert.False(t, Valid("Pantai-Indah"))
	assert.False(t, Valid("-pantai"))
	assert.False(t, Valid(""))
}
