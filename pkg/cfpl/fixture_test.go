package cfpl

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs representative CFPL programs through the engine and
// snapshots their observable output, covering the scenarios the language
// is expected to support end to end.
func TestFixtures(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  []string
	}{
		{
			name: "chained_assignment",
			source: `VAR a, b AS INT
START
a = b = 10
OUTPUT: "a=" & a & " b=" & b
STOP
`,
		},
		{
			name: "escape_sequences",
			source: `START
OUTPUT: "brackets: [[x]]" & "[#]" & "done"
STOP
`,
		},
		{
			name: "conditional_branching",
			source: `VAR score AS INT
START
score = 72
IF (score >= 60)
START
OUTPUT: "pass"
STOP
ELSE
START
OUTPUT: "fail"
STOP
STOP
`,
		},
		{
			name: "while_loop_accumulation",
			source: `VAR i, total AS INT
START
i = 1
total = 0
WHILE (i <= 5)
START
total = total + i
i = i + 1
STOP
OUTPUT: "total=" & total
STOP
`,
		},
		{
			name: "input_type_coercion",
			source: `VAR age AS INT
VAR price AS FLOAT
VAR active AS BOOL
START
INPUT: age, price, active
OUTPUT: age & "," & price & "," & active
STOP
`,
			input: []string{"30", "19.99", "TRUE"},
		},
		{
			name: "division_by_zero",
			source: `VAR x AS INT
START
x = 10 / 0
STOP
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Run(tt.source, tt.input...)
			var snapshot string
			if result.Success {
				snapshot = "OK: " + result.Output
			} else {
				snapshot = "ERROR: " + result.Error.Error()
			}
			snaps.MatchSnapshot(t, snapshot)
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
