// internal/document/shopping_list_test.go
package document

import (
	"bytes"
	"iter"
	"slices"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) iter.Seq[Item] {
	list := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, Item{Name: "Мука", Unit: "г", Amount: int64(i + 1)})
	}
	return slices.Values(list)
}

func pageCount(t *testing.T, content []byte) int {
	t.Helper()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	return reader.NumPage()
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "3. Мука - 300 г", FormatLine(3, Item{Name: "Мука", Unit: "г", Amount: 300}))
}

func TestLayoutEmptyHasTitleOnly(t *testing.T) {
	placements := Layout(items(0))

	require.Len(t, placements, 1)
	assert.Equal(t, Placement{Page: 1, X: 40, Y: 690}, placements[0])
}

func TestLayoutBreaksPages(t *testing.T) {
	placements := Layout(items(41))
	lines := placements[1:]
	require.Len(t, lines, 41)

	// First page: y = 650, 620, ..., 110
	assert.Equal(t, 650.0, lines[0].Y)
	assert.Equal(t, 1, lines[18].Page)
	assert.Equal(t, 110.0, lines[18].Y)

	// Second page restarts at 700 and runs down to 100
	assert.Equal(t, 2, lines[19].Page)
	assert.Equal(t, 700.0, lines[19].Y)
	assert.Equal(t, 2, lines[39].Page)
	assert.Equal(t, 100.0, lines[39].Y)

	assert.Equal(t, 3, lines[40].Page)

	// Numbering continues across pages
	assert.Equal(t, "20. Мука - 20 г", lines[19].Text)
	assert.Equal(t, "41. Мука - 41 г", lines[40].Text)
}

func TestRenderShoppingList(t *testing.T) {
	cases := []struct {
		name  string
		count int
		pages int
	}{
		{"empty", 0, 1},
		{"one page", 19, 1},
		{"two pages", 20, 2},
		{"three pages", 41, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderShoppingList(&buf, "Список покупок", items(tc.count)))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
			assert.Equal(t, tc.pages, pageCount(t, buf.Bytes()))
		})
	}
}
