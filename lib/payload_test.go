package lib

import (
	"encoding/json"
	"testing"

	"konigfood_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPayloadSizeMatchesCommitFormat(t *testing.T) {
	products := []structs.Product{
		{ID: "p1", Title: "Борщ", Slug: "borsch", RegularPrice: "450"},
	}

	size, err := JSONPayloadSize(products)
	require.NoError(t, err)

	serialized, err := json.MarshalIndent(products, "", "  ")
	require.NoError(t, err)
	assert.EqualValues(t, len(serialized), size)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0.5 KiB", FormatBytes(512))
	assert.Equal(t, "100.0 KiB", FormatBytes(100*1024))
	assert.Equal(t, "1.00 MiB", FormatBytes(1024*1024))
	assert.Equal(t, "4.20 MiB", FormatBytes(4404019))
}
