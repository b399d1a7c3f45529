package plan

import (
	"strings"
	"testing"
)

func TestArchiveResult_Summary(t *testing.T) {
	tests := []struct {
		name   string
		result *ArchiveResult
		want   string
	}{
		{
			name:   "nil result",
			result: nil,
			want:   "",
		},
		{
			name:   "nothing happened",
			result: &ArchiveResult{Kept: []string{"a.md"}},
			want:   "",
		},
		{
			name: "archived with references and index",
			result: &ArchiveResult{
				Archived:     []string{"a.md", "b.md"},
				UpdatedFiles: []string{"CLAUDE.md", "docs/x.md"},
				IndexRebuilt: true,
			},
			want: "\n## Auto-Archived Plans\n\n" +
				"The following completed plans were automatically moved to archive:\n" +
				"- a.md, b.md\n\n" +
				"References updated in:\n" +
				"- CLAUDE.md\n" +
				"- docs/x.md\n" +
				"Indexes have been updated.\n",
		},
		{
			name: "warnings come first",
			result: &ArchiveResult{
				Archived:     []string{"a.md"},
				Warnings:     []string{"Warning: one", "Warning: two"},
				IndexRebuilt: true,
			},
			want: "\n## Archive Warnings\n\n" +
				"- Warning: one\n" +
				"- Warning: two\n\n" +
				"\n## Auto-Archived Plans\n\n" +
				"The following completed plans were automatically moved to archive:\n" +
				"- a.md\n\n" +
				"Indexes have been updated.\n",
		},
		{
			name:   "warnings only",
			result: &ArchiveResult{Warnings: []string{"Warning: rename failed"}},
			want:   "\n## Archive Warnings\n\n- Warning: rename failed\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("Summary() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestArchiveResult_SummaryOmitsEmptyReferences(t *testing.T) {
	r := &ArchiveResult{Archived: []string{"a.md"}}
	if strings.Contains(r.Summary(), "References updated in") {
		t.Error("empty reference list should be omitted")
	}
}
