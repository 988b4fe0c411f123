package csvcodec

import (
	"strings"

	"github.com/angelmondragon/blindquote/internal/quote"
)

// decodeLegacy reads files written before the project block existed. The
// item header is found by prefix scan and rows are split on plain commas.
// Two snapshot carriers are understood: in-band "F1_SNAPSHOT,key,value" rows,
// and snapshot columns appended to the item header whose values sit on the
// first data line. Legacy files carry no customer data.
func decodeLegacy(text string) Result {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	headerIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" && strings.HasPrefix(line, legacyPrefix) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return failed("no line starts with " + legacyPrefix)
	}

	headers := splitPlain(lines[headerIndex])
	snapshotCols := make(map[string]int, len(SnapshotKeys))
	for _, key := range SnapshotKeys {
		snapshotCols[key] = indexOf(headers, key)
	}
	isLF := indexOf(headers, isLFHeader)

	out := &Decoded{Items: []quote.LineItem{}, LFIndexes: []int{}}
	for index, line := range lines[headerIndex+1:] {
		if skipItemLine(line) {
			continue
		}
		values := splitPlain(strings.TrimSpace(line))

		if values[0] == legacySentinel && len(values) >= 3 {
			if isSnapshotKey(values[1]) {
				if n, ok := parseNumber(values[2]); ok {
					out.F1Snapshot.Set(values[1], n)
				}
			}
			continue
		}

		if index == 0 {
			for _, key := range SnapshotKeys {
				col := snapshotCols[key]
				if col < 0 || col >= len(values) || values[col] == "" {
					continue
				}
				if n, ok := parseNumber(values[col]); ok {
					out.F1Snapshot.Set(key, n)
				}
			}
		}

		appendItem(out, values, isLF)
	}
	return Result{OK: true, Format: FormatLegacy, Data: out}
}
