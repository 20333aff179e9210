package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	t.Run("ToDataURL と ParseDataURL は往復できるのだ", func(t *testing.T) {
		data := []byte{0x89, 'P', 'N', 'G'}
		u := ToDataURL("image/png", data)
		assert.Equal(t, "data:image/png;base64,iVBORw==", u)

		mimeType, got, err := ParseDataURL(u)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
		assert.Equal(t, data, got)
	})

	t.Run("不正な入力はエラーになるのだ", func(t *testing.T) {
		for _, in := range []string{
			"https://example.com/a.png",
			"data:image/png;base64",
			"data:image/png,plain",
			"data:image/png;base64,!!!",
		} {
			_, _, err := ParseDataURL(in)
			assert.Error(t, err, in)
		}
	})
}
