package sso

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractHiddenFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		html     string
		expected map[string]string
	}{
		{
			name:     "single hidden input",
			html:     `<input type="hidden" name="lt" value="abc">`,
			expected: map[string]string{"lt": "abc"},
		},
		{
			name:     "attribute order and single quotes",
			html:     `<form><input value='e1s1' name='execution' type='hidden'/></form>`,
			expected: map[string]string{"execution": "e1s1"},
		},
		{
			name:     "type is matched case-insensitively",
			html:     `<INPUT TYPE="HIDDEN" NAME="_eventId" VALUE="submit">`,
			expected: map[string]string{"_eventId": "submit"},
		},
		{
			name:     "input without value is skipped",
			html:     `<input type="hidden" name="novalue"><input type="hidden" name="ok" value="1">`,
			expected: map[string]string{"ok": "1"},
		},
		{
			name:     "input without name is skipped",
			html:     `<input type="hidden" value="orphan">`,
			expected: map[string]string{},
		},
		{
			name:     "empty value is kept",
			html:     `<input type="hidden" name="blank" value="">`,
			expected: map[string]string{"blank": ""},
		},
		{
			name:     "last occurrence wins",
			html:     `<input type="hidden" name="lt" value="first"><input type="hidden" name="lt" value="second">`,
			expected: map[string]string{"lt": "second"},
		},
		{
			name:     "visible inputs are ignored",
			html:     `<input type="text" name="username" value="x"><input type="password" name="password" value="y">`,
			expected: map[string]string{},
		},
		{
			name: "realistic CAS login page",
			html: `<html><body><form id="fm1" method="post">
				<input id="username" name="username" type="text" value=""/>
				<input type="hidden" name="lt" value="LT-1-abc-cas" />
				<input type="hidden" name="execution" value="e1s1" />
				<input type="hidden" name="_eventId" value="submit" />
				</form></body></html>`,
			expected: map[string]string{
				"lt":        "LT-1-abc-cas",
				"execution": "e1s1",
				"_eventId":  "submit",
			},
		},
		{
			name:     "empty document",
			html:     "",
			expected: map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractHiddenFields(tc.html)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("ExtractHiddenFields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
