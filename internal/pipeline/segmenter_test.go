package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"listas-pipeline/internal/model"
)

func TestSegmentPages(t *testing.T) {
	pages := []model.RecognizedPage{
		{DocumentID: "a.txt", PageNumber: 1, Text: "  first line \n\n second line\t\n"},
		{DocumentID: "b.txt", PageNumber: 1, Text: "third line"},
	}

	segments := SegmentPages(pages)
	require.Equal(t, []string{"first line", "second line", "third line"}, segments)
}

func TestSegmentPagesEmptyText(t *testing.T) {
	pages := []model.RecognizedPage{
		{DocumentID: "a.txt", PageNumber: 1, Text: ""},
		{DocumentID: "b.txt", PageNumber: 1, Text: "  \n \n"},
	}
	require.Empty(t, SegmentPages(pages))
	require.Empty(t, SegmentPages(nil))
}
